package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/vehiclecatalog/internal/infrastructure/redis"
	"github.com/yourorg/vehiclecatalog/pkg/database"
)

// HealthHandler handles readiness checks against the backing stores
type HealthHandler struct {
	db     *database.ConnectionPool
	redis  *redis.Client
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.ConnectionPool, redisClient *redis.Client, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{db: db, redis: redisClient, logger: logger}
}

// Ready handles GET /readyz: the service is ready only when both postgres
// and redis answer.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("readiness check failed", slog.String("dependency", "postgres"), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database not ready"))
		return
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", slog.String("dependency", "redis"), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("redis not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// Live handles GET /healthz
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
