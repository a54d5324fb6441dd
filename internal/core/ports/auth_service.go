package ports

import (
	"context"

	"github.com/mavera/backoffice/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	SessionID string
	User      *domain.UserProfile
}

// CreateUserInput carries an admin-created staff account.
type CreateUserInput struct {
	Name              string
	Email             string
	Password          string
	Role              string
	Roles             []string
	CustomPermissions []string
	Avatar            string
	ActorID           string
}

// AuthService authenticates staff and manages their sessions.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	// Session restores the profile stored for sessionID, or returns
	// domain.ErrUnauthenticated.
	Session(ctx context.Context, sessionID string) (*domain.UserProfile, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.UserProfile, error)
}
