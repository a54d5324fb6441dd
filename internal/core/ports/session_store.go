package ports

import (
	"context"
	"time"
)

// SessionStore is the client-persisted storage a session provider writes its
// profile to. Values are opaque bytes (JSON in practice).
type SessionStore interface {
	// Load returns domain.ErrSessionNotFound when the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
