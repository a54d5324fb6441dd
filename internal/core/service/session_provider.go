package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

// StorageKey is the persisted session entry. Each session namespaces it with
// its own id.
const StorageKey = "mavera_user"

// SessionKey returns the storage key for a session id.
func SessionKey(sessionID string) string {
	if sessionID == "" {
		return StorageKey
	}
	return StorageKey + ":" + sessionID
}

// RestoreOutcome describes what Restore found in storage.
type RestoreOutcome string

const (
	RestoreEmpty     RestoreOutcome = "empty"
	RestoreOK        RestoreOutcome = "restored"
	RestoreDiscarded RestoreOutcome = "discarded"
)

// SessionProvider holds the current user of one session. State changes only
// through Login and Logout; everything else reads.
type SessionProvider struct {
	store ports.SessionStore
	key   string
	ttl   time.Duration
	log   zerolog.Logger

	mu    sync.RWMutex
	user  *domain.UserProfile
	ready bool
}

// NewSessionProvider returns a provider for sessionID. It is not ready until
// Restore or Login has run.
func NewSessionProvider(store ports.SessionStore, sessionID string, ttl time.Duration, log zerolog.Logger) *SessionProvider {
	return &SessionProvider{
		store: store,
		key:   SessionKey(sessionID),
		ttl:   ttl,
		log:   log,
	}
}

// Restore reads the persisted profile. A corrupt or null entry is deleted and
// the session starts unauthenticated; only store failures are returned.
func (p *SessionProvider) Restore(ctx context.Context) (RestoreOutcome, error) {
	raw, err := p.store.Load(ctx, p.key)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			p.set(nil)
			return RestoreEmpty, nil
		}
		return "", fmt.Errorf("restore session: %w", err)
	}

	var user *domain.UserProfile
	err = json.Unmarshal(raw, &user)
	if err == nil && user == nil {
		err = errors.New("null profile")
	}
	if err != nil {
		p.log.Debug().Err(err).Str("key", p.key).Msg("discarding corrupt session entry")
		if delErr := p.store.Delete(ctx, p.key); delErr != nil {
			p.log.Warn().Err(delErr).Str("key", p.key).Msg("failed to delete corrupt session entry")
		}
		p.set(nil)
		return RestoreDiscarded, nil
	}

	p.set(user)
	return RestoreOK, nil
}

// Ready reports whether the initial read has completed.
func (p *SessionProvider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

// CurrentUser returns a copy of the signed-in profile, or nil.
func (p *SessionProvider) CurrentUser() *domain.UserProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.ready {
		return nil
	}
	return p.user.Clone()
}

// Login replaces the session state and overwrites the persisted entry.
func (p *SessionProvider) Login(ctx context.Context, user *domain.UserProfile) error {
	if user == nil {
		return fmt.Errorf("login: %w", domain.ErrUnauthenticated)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("login: encode profile: %w", err)
	}
	if err := p.store.Save(ctx, p.key, raw, p.ttl); err != nil {
		return fmt.Errorf("login: persist session: %w", err)
	}
	p.set(user.Clone())
	return nil
}

// Logout clears the state and removes the persisted entry. The in-memory
// state is cleared even when the store delete fails.
func (p *SessionProvider) Logout(ctx context.Context) error {
	p.set(nil)
	if err := p.store.Delete(ctx, p.key); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// HasPermission resolves perm against the current user.
func (p *SessionProvider) HasPermission(perm domain.Permission) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.ready {
		return false
	}
	return domain.HasPermission(p.user, perm)
}

func (p *SessionProvider) set(user *domain.UserProfile) {
	p.mu.Lock()
	p.user = user
	p.ready = true
	p.mu.Unlock()
}
