package audit

import (
	"context"
	"log/slog"
	"time"
)

// Logger emits structured audit records for catalog mutations.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

type requestIDKey struct{}

// WithRequestID attaches a request ID to the context so audit records can
// carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID, or "" when none was attached.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func (al *Logger) LogAction(ctx context.Context, userID int64, action, resource, resourceID, status string) {
	requestID := RequestIDFromContext(ctx)

	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.Int64("user_id", userID),
		slog.String("status", status),
		slog.String("request_id", requestID),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogWrite(ctx context.Context, userID int64, action, resource, resourceID string) {
	al.LogAction(ctx, userID, action, resource, resourceID, "initiated")
}

func (al *Logger) LogDenied(ctx context.Context, userID int64, reason string) {
	al.LogAction(ctx, userID, "access_denied", "api", "", reason)
}
