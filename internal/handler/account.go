package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/vehiclecatalog/internal/service"
)

// AccountHandler handles account creation
type AccountHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(authService *service.AuthService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{authService: authService, logger: logger}
}

// CreateAccountRequest represents a signup request. The password is
// write-only: it never appears in any response.
type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountResponse represents a created account
type AccountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ServeHTTP handles POST /api/create
func (h *AccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode account request", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.authService.CreateAccount(req.Username, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, AccountResponse{ID: user.ID, Username: user.Username})
}
