package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/vehiclecatalog/internal/domain"
)

// ErrorResponse represents an error response. Fields is present only for
// validation failures and names each offending field.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// respondError maps a service error onto the wire taxonomy: validation
// failures are 400 with a field map, unknown ids 404, bad credentials 400,
// anything unexpected 500.
func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	default:
		if log != nil {
			log.Error("request failed", slog.String("error", err.Error()))
		}
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseID parses the {id} path value. A non-numeric id behaves like an
// unknown one: 404.
func parseID(r *http.Request) (int64, error) {
	id := r.PathValue("id")
	if id == "" || len(id) > 18 {
		return 0, domain.ErrNotFound
	}
	var n int64
	for _, c := range id {
		if c < '0' || c > '9' {
			return 0, domain.ErrNotFound
		}
		n = n*10 + int64(c-'0')
	}
	if n == 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}
