package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/vehiclecatalog/internal/security/audit"
	"github.com/yourorg/vehiclecatalog/internal/security/auth"
	"github.com/yourorg/vehiclecatalog/internal/security/ratelimit"
)

func requestWithClaims(method, path string, claims *auth.Claims) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), ClaimsContextKey{}, claims))
	}
	return req
}

func TestAuditMiddlewareRecordsResourceID(t *testing.T) {
	var buf bytes.Buffer
	auditLog := audit.NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := AuditMiddleware(auditLog)(next)

	claims := &auth.Claims{UserID: 42}

	// The id comes from the raw path: the middleware runs before routing.
	h.ServeHTTP(httptest.NewRecorder(), requestWithClaims(http.MethodDelete, "/api/segments/7", claims))

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode audit record failed: %v", err)
	}
	if record["resource_id"] != "7" {
		t.Errorf("expected resource_id 7, got %v", record["resource_id"])
	}
	if record["resource"] != "segment" || record["action"] != "delete" {
		t.Errorf("unexpected record: %v", record)
	}
	if record["user_id"] != float64(42) {
		t.Errorf("expected user_id 42, got %v", record["user_id"])
	}

	// A collection write has no id segment
	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), requestWithClaims(http.MethodPost, "/api/vehicles/", claims))
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode audit record failed: %v", err)
	}
	if record["resource_id"] != "" {
		t.Errorf("expected empty resource_id for collection write, got %v", record["resource_id"])
	}

	// Reads are not audited
	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), requestWithClaims(http.MethodGet, "/api/segments/7", claims))
	if buf.Len() != 0 {
		t.Errorf("expected no audit record for a read, got %s", buf.String())
	}
}

func TestRateLimitKeyedByUserID(t *testing.T) {
	limiter := ratelimit.NewLimiter(1, time.Minute)
	defer limiter.Stop()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimitMiddleware(limiter, log)(next)

	// Two distinct users sharing a display name get separate buckets
	alice := &auth.Claims{UserID: 1, Username: "dup"}
	bob := &auth.Claims{UserID: 2, Username: "dup"}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/segments/", alice))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request for user 1: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/segments/", bob))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request for user 2: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/segments/", alice))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request for user 1: expected 429, got %d", rec.Code)
	}
}
