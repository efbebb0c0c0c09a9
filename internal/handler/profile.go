package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/vehiclecatalog/internal/security/middleware"
	"github.com/yourorg/vehiclecatalog/internal/service"
)

// ProfileHandler exposes the caller's own identity. The profile is
// read-only: PUT and PATCH are rejected outright, before any body parsing.
type ProfileHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authService *service.AuthService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{authService: authService, logger: logger}
}

// ProfileResponse represents the caller's identity. Only id and username,
// never the password.
type ProfileResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ServeHTTP handles /api/profile/
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		writeError(w, http.StatusMethodNotAllowed, "PUT method is not allowed")
	case http.MethodPatch:
		writeError(w, http.StatusMethodNotAllowed, "PATCH method is not allowed")
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.authService.Profile(claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{ID: user.ID, Username: user.Username})
}
