package memory

import (
	"context"
	"sync"

	"github.com/mavera/backoffice/internal/core/domain"
)

// CredentialRepository keeps staff credentials in a map keyed by normalized email.
type CredentialRepository struct {
	mu    sync.RWMutex
	creds map[string]domain.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{creds: make(map[string]domain.Credential)}
}

func (r *CredentialRepository) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.RLock()
	c, ok := r.creds[email]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneCredential(c), nil
}

func (r *CredentialRepository) Create(_ context.Context, cred *domain.Credential) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.creds[cred.Email]; exists {
		return nil, domain.ErrUserExists
	}
	stored := *cloneCredential(*cred)
	r.creds[cred.Email] = stored
	return cloneCredential(stored), nil
}

func cloneCredential(c domain.Credential) *domain.Credential {
	out := c
	out.Profile = *c.Profile.Clone()
	return &out
}
