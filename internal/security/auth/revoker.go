package auth

import (
	"context"
	"fmt"
	"time"
)

// DenylistStore is the storage needed for token revocation. The redis
// client satisfies it; tests use an in-memory map.
type DenylistStore interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Revoker invalidates tokens before their natural expiry by putting their
// jti on a denylist. Entries expire with the token, so the list stays small.
type Revoker struct {
	store DenylistStore
}

func NewRevoker(store DenylistStore) *Revoker {
	return &Revoker{store: store}
}

// Revoke denylists the token behind the given claims until it expires.
func (r *Revoker) Revoke(ctx context.Context, claims *Claims) error {
	if claims.ID == "" {
		return fmt.Errorf("token has no id")
	}
	ttl := time.Second
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > ttl {
			ttl = remaining
		}
	}
	return r.store.Set(ctx, revocationKey(claims.ID), "1", ttl)
}

// IsRevoked reports whether the token behind the claims has been revoked.
func (r *Revoker) IsRevoked(ctx context.Context, claims *Claims) (bool, error) {
	if claims.ID == "" {
		return false, nil
	}
	return r.store.Exists(ctx, revocationKey(claims.ID))
}

func revocationKey(jti string) string {
	return "revoked:" + jti
}
