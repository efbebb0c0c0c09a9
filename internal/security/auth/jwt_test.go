package auth

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager("test-secret", "vehiclecatalog", time.Hour)

	token, expiresAt, err := tm.GenerateToken(42, "alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected expiry in the future")
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id (jti)")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", "vehiclecatalog", time.Hour)
	other := NewTokenManager("secret-b", "vehiclecatalog", time.Hour)

	token, _, err := tm.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", "vehiclecatalog", time.Hour)
	if _, err := tm.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected validation to fail")
	}
}

func TestExtractToken(t *testing.T) {
	if _, err := ExtractToken("Bearer abc"); err != nil {
		t.Errorf("expected bearer header to parse: %v", err)
	}
	for _, h := range []string{"", "abc", "Basic abc", "Bearer a b"} {
		if _, err := ExtractToken(h); err == nil {
			t.Errorf("expected %q to be rejected", h)
		}
	}
}

type memDenylist struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemDenylist() *memDenylist {
	return &memDenylist{keys: map[string]bool{}}
}

func (m *memDenylist) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = true
	return nil
}

func (m *memDenylist) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[key], nil
}

func TestRevoker(t *testing.T) {
	tm := NewTokenManager("test-secret", "vehiclecatalog", time.Hour)
	revoker := NewRevoker(newMemDenylist())

	token, _, err := tm.GenerateToken(7, "bob")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	revoked, err := revoker.IsRevoked(context.Background(), claims)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if revoked {
		t.Fatal("fresh token should not be revoked")
	}

	if err := revoker.Revoke(context.Background(), claims); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	revoked, err = revoker.IsRevoked(context.Background(), claims)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked")
	}
}
