package ports

import (
	"context"

	"github.com/mavera/backoffice/internal/core/domain"
)

// CredentialRepository defines the persistence of staff login credentials.
type CredentialRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no credential matches.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, cred *domain.Credential) (*domain.Credential, error)
}
