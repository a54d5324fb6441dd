package handler

import "github.com/mavera/backoffice/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Name              string   `json:"name"               validate:"required"`
	Email             string   `json:"email"              validate:"required,email"`
	Password          string   `json:"password"           validate:"required,min=8"`
	Role              string   `json:"role"               validate:"required"`
	Roles             []string `json:"roles"`
	CustomPermissions []string `json:"customPermissions"`
	Avatar            string   `json:"avatar"             validate:"max=3"`
}

// sessionResponse describes the signed-in user as the dashboard shell needs it.
type sessionResponse struct {
	Token       string              `json:"token,omitempty"`
	User        *domain.UserProfile `json:"user"`
	Permissions []domain.Permission `json:"permissions"`
	Navigation  []domain.NavItem    `json:"navigation"`
}

type userResponse struct {
	User *domain.UserProfile `json:"user"`
}

func newSessionResponse(token string, user *domain.UserProfile) sessionResponse {
	return sessionResponse{
		Token:       token,
		User:        user,
		Permissions: domain.EffectivePermissions(user),
		Navigation:  domain.NavigationFor(user.Role),
	}
}
