package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestAuditRecordCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	al := NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := WithRequestID(context.Background(), "req-123")
	al.LogWrite(ctx, 42, "delete", "segment", "7")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode audit record failed: %v", err)
	}
	if record["request_id"] != "req-123" {
		t.Errorf("expected request_id req-123, got %v", record["request_id"])
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
}

func TestRequestIDFromBareContext(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty request id, got %q", id)
	}
}
