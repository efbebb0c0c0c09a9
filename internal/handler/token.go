package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/vehiclecatalog/internal/observability/metrics"
	"github.com/yourorg/vehiclecatalog/internal/security/auth"
	"github.com/yourorg/vehiclecatalog/internal/security/middleware"
	"github.com/yourorg/vehiclecatalog/internal/service"
)

// TokenHandler issues bearer tokens for valid credentials
type TokenHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(authService *service.AuthService, logger *slog.Logger) *TokenHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenHandler{authService: authService, logger: logger}
}

// TokenRequest represents credentials presented for a token
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP handles POST /api/auth/
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode token request", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.authService.IssueToken(req.Username, req.Password)
	if err != nil {
		metrics.ObserveAuthFailure("bad_credentials")
		respondError(w, h.logger, err)
		return
	}

	metrics.ObserveTokenIssued()
	writeJSON(w, http.StatusOK, result)
}

// LogoutHandler revokes the presented token
type LogoutHandler struct {
	revoker *auth.Revoker
	logger  *slog.Logger
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(revoker *auth.Revoker, logger *slog.Logger) *LogoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogoutHandler{revoker: revoker, logger: logger}
}

// ServeHTTP handles POST /api/auth/logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.revoker.Revoke(r.Context(), claims); err != nil {
		h.logger.Error("failed to revoke token",
			slog.Int64("user_id", claims.UserID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("token revoked", slog.Int64("user_id", claims.UserID))
	w.WriteHeader(http.StatusNoContent)
}
