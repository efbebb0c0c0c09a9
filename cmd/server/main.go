package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourorg/vehiclecatalog/internal/handler"
	"github.com/yourorg/vehiclecatalog/internal/infrastructure/logger"
	"github.com/yourorg/vehiclecatalog/internal/infrastructure/redis"
	"github.com/yourorg/vehiclecatalog/internal/observability/metrics"
	"github.com/yourorg/vehiclecatalog/internal/observability/tracing"
	"github.com/yourorg/vehiclecatalog/internal/repository"
	"github.com/yourorg/vehiclecatalog/internal/security/audit"
	"github.com/yourorg/vehiclecatalog/internal/security/auth"
	"github.com/yourorg/vehiclecatalog/internal/security/middleware"
	"github.com/yourorg/vehiclecatalog/internal/security/ratelimit"
	"github.com/yourorg/vehiclecatalog/internal/service"
	"github.com/yourorg/vehiclecatalog/pkg/cache"
	"github.com/yourorg/vehiclecatalog/pkg/config"
	"github.com/yourorg/vehiclecatalog/pkg/database"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting vehicle catalog server", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "vehiclecatalog", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect to Postgres and migrate the schema
	db, err := database.NewConnectionPool(ctx, &database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("failed to migrate schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Initialize Redis client (token revocation)
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	// 6. Initialize repositories
	userRepo := repository.NewPostgresUserRepository(db.GetDB(), log)
	segmentRepo := repository.NewPostgresSegmentRepository(db.GetDB(), log)
	brandRepo := repository.NewPostgresBrandRepository(db.GetDB(), log)
	vehicleRepo := repository.NewPostgresVehicleRepository(db.GetDB(), log)

	// 7. Initialize security components
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "vehiclecatalog", time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	revoker := auth.NewRevoker(redisClient)
	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitPerMinute, time.Minute)
	auditLogger := audit.NewLogger(log)

	// 8. Initialize services
	authService := service.NewAuthService(userRepo, tokenManager, log)
	catalogService := service.NewCatalogService(segmentRepo, brandRepo, vehicleRepo, cache.New(), log)

	// 9. Initialize handlers
	accountHandler := handler.NewAccountHandler(authService, log)
	tokenHandler := handler.NewTokenHandler(authService, log)
	logoutHandler := handler.NewLogoutHandler(revoker, log)
	profileHandler := handler.NewProfileHandler(authService, log)
	segmentHandler := handler.NewSegmentHandler(catalogService, log)
	brandHandler := handler.NewBrandHandler(catalogService, log)
	vehicleHandler := handler.NewVehicleHandler(catalogService, log)
	healthHandler := handler.NewHealthHandler(db, redisClient, log)

	// 10. Setup HTTP routes
	mux := http.NewServeMux()
	mux.Handle("POST /api/create", accountHandler)
	mux.Handle("POST /api/auth/{$}", tokenHandler)
	mux.Handle("POST /api/auth/logout", logoutHandler)
	mux.Handle("/api/profile/{$}", profileHandler)

	mux.HandleFunc("GET /api/segments/{$}", segmentHandler.List)
	mux.HandleFunc("POST /api/segments/{$}", segmentHandler.Create)
	mux.HandleFunc("GET /api/segments/{id}", segmentHandler.Get)
	mux.HandleFunc("PUT /api/segments/{id}", segmentHandler.Replace)
	mux.HandleFunc("PATCH /api/segments/{id}", segmentHandler.Patch)
	mux.HandleFunc("DELETE /api/segments/{id}", segmentHandler.Delete)

	mux.HandleFunc("GET /api/brands/{$}", brandHandler.List)
	mux.HandleFunc("POST /api/brands/{$}", brandHandler.Create)
	mux.HandleFunc("GET /api/brands/{id}", brandHandler.Get)
	mux.HandleFunc("PUT /api/brands/{id}", brandHandler.Replace)
	mux.HandleFunc("PATCH /api/brands/{id}", brandHandler.Patch)
	mux.HandleFunc("DELETE /api/brands/{id}", brandHandler.Delete)

	mux.HandleFunc("GET /api/vehicles/{$}", vehicleHandler.List)
	mux.HandleFunc("POST /api/vehicles/{$}", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles/{id}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{id}", vehicleHandler.Replace)
	mux.HandleFunc("PATCH /api/vehicles/{id}", vehicleHandler.Patch)
	mux.HandleFunc("DELETE /api/vehicles/{id}", vehicleHandler.Delete)

	mux.HandleFunc("GET /healthz", healthHandler.Live)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.Handle("/metrics", promhttp.Handler())

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> audit -> rate limit -> auth -> CORS
	rootHandler := withRequestID(
		middleware.AuthMiddleware(tokenManager, revoker, log)(
			middleware.RateLimitMiddleware(rateLimiter, log)(
				middleware.AuditMiddleware(auditLogger)(handlerWithCORS),
			),
		),
		log,
	)

	// 11. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      otelhttp.NewHandler(metrics.HTTPMetricsMiddleware(rootHandler), "vehiclecatalog"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "bearer token"),
		slog.Int("rate_limit", cfg.RateLimitPerMinute),
		slog.String("rate_limit_window", "1m"),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info("shutdown signal received")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	rateLimiter.Stop()
	log.Info("server stopped")
}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := audit.WithRequestID(r.Context(), reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
