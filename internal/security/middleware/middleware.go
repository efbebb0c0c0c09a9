package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourorg/vehiclecatalog/internal/security/audit"
	"github.com/yourorg/vehiclecatalog/internal/security/auth"
	"github.com/yourorg/vehiclecatalog/internal/security/ratelimit"
)

type ClaimsContextKey struct{}

// isPublicPath lists the endpoints reachable without a token: health and
// metrics probes, account creation, and token issuance. Everything else,
// including logout, is gated.
func isPublicPath(path string) bool {
	return path == "/healthz" || path == "/readyz" || path == "/metrics" ||
		path == "/api/create" || path == "/api/auth/"
}

// AuthMiddleware requires a valid, unrevoked bearer token on every
// non-public endpoint and attaches the resolved claims to the context.
func AuthMiddleware(tm *auth.TokenManager, revoker *auth.Revoker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authentication required")
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				unauthorized(w, "invalid authorization header")
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(r.Context(), claims)
				if err != nil {
					log.Error("revocation check failed", slog.String("error", err.Error()))
					unauthorized(w, "invalid token")
					return
				}
				if revoked {
					unauthorized(w, "invalid token")
					return
				}
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimitMiddleware throttles authenticated traffic per user.
func RateLimitMiddleware(limiter *ratelimit.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			userKey := ""
			if claims := GetClaimsFromContext(r.Context()); claims != nil {
				userKey = strconv.FormatInt(claims.UserID, 10)
			}

			if !limiter.Allow(userKey) {
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuditMiddleware records every catalog mutation with the acting user.
func AuditMiddleware(auditLog *audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resource, ok := catalogResource(r.URL.Path); ok && isMutation(r.Method) {
				userID := int64(0)
				if claims := GetClaimsFromContext(r.Context()); claims != nil {
					userID = claims.UserID
				}
				auditLog.LogWrite(r.Context(), userID, strings.ToLower(r.Method), resource, resourceIDFromPath(r.URL.Path))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resourceIDFromPath extracts the trailing id segment. The middleware runs
// before the mux routes the request, so path values are not available yet.
func resourceIDFromPath(path string) string {
	return path[strings.LastIndexByte(path, '/')+1:]
}

func catalogResource(path string) (string, bool) {
	switch {
	case strings.HasPrefix(path, "/api/segments/"):
		return "segment", true
	case strings.HasPrefix(path, "/api/brands/"):
		return "brand", true
	case strings.HasPrefix(path, "/api/vehicles/"):
		return "vehicle", true
	}
	return "", false
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}

// GetClaimsFromContext returns the authenticated caller's claims, or nil.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	if c := ctx.Value(ClaimsContextKey{}); c != nil {
		if claims, ok := c.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
