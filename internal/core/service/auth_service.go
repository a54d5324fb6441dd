package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

// AuthService implements staff login, logout, session restore and account creation.
type AuthService struct {
	creds     ports.CredentialRepository
	sessions  ports.SessionStore
	audit     ports.AuditRecorder
	jwtSecret string
	ttl       time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	creds ports.CredentialRepository,
	sessions ports.SessionStore,
	audit ports.AuditRecorder,
	jwtSecret string,
	ttl time.Duration,
	log zerolog.Logger,
) *AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		creds:     creds,
		sessions:  sessions,
		audit:     audit,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		log:       log,
	}
}

// Provider builds the session provider for sessionID without reading storage.
func (s *AuthService) Provider(sessionID string) *SessionProvider {
	return NewSessionProvider(s.sessions, sessionID, s.ttl, s.log)
}

// Login checks the password against the credential table, persists the
// profile under a fresh session and returns a signed token for it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record("", domain.AuditLoginFailed, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		s.record(cred.Profile.ID, domain.AuditLoginFailed, email)
		return nil, domain.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	user := cred.Profile.Clone()
	if err := s.Provider(sessionID).Login(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user, sessionID)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.record(user.ID, domain.AuditLogin, email)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.LoginResult{Token: token, SessionID: sessionID, User: user}, nil
}

// Logout ends the session. Logging out an unknown session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	p := s.Provider(sessionID)
	if _, err := p.Restore(ctx); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("restore before logout failed")
	}
	actor := ""
	if u := p.CurrentUser(); u != nil {
		actor = u.ID
	}
	if err := p.Logout(ctx); err != nil {
		return err
	}
	s.record(actor, domain.AuditLogout, sessionID)
	return nil
}

// Session restores the profile stored for sessionID.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthenticated
	}
	p := s.Provider(sessionID)
	outcome, err := p.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if outcome == RestoreDiscarded {
		s.record("", domain.AuditSessionDiscarded, sessionID)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrSessionDiscarded)
	}
	user := p.CurrentUser()
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// CreateUser registers a staff account. The primary role is always part of
// the assigned role list when additional roles are given.
func (s *AuthService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.UserProfile, error) {
	email := domain.NormalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidUser)
	}

	primary, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	roles, err := parseRoles(primary, in.Roles)
	if err != nil {
		return nil, err
	}
	perms, err := parsePermissions(in.CustomPermissions)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	avatar := in.Avatar
	if avatar == "" {
		avatar = domain.Initials(in.Name)
	}

	now := time.Now().UTC()
	cred := &domain.Credential{
		Email:        email,
		PasswordHash: string(hash),
		Profile: domain.UserProfile{
			ID:                uuid.NewString(),
			Name:              in.Name,
			Email:             email,
			Role:              primary,
			Roles:             roles,
			CustomPermissions: perms,
			Avatar:            avatar,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.creds.Create(ctx, cred)
	if err != nil {
		return nil, err
	}

	s.record(in.ActorID, domain.AuditUserCreated, email)
	return created.Profile.Clone(), nil
}

func (s *AuthService) generateToken(user *domain.UserProfile, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"sid":  sessionID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) record(actor string, action domain.AuditAction, subject string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		ActorID:   actor,
		Action:    action,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
	})
}

func parseRoles(primary domain.Role, raw []string) ([]domain.Role, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	roles := []domain.Role{primary}
	seen := map[domain.Role]struct{}{primary: {}}
	for _, r := range raw {
		role, err := domain.ParseRole(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles, nil
}

func parsePermissions(raw []string) ([]domain.Permission, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	perms := make([]domain.Permission, 0, len(raw))
	for _, p := range raw {
		perm := domain.Permission(p)
		if !perm.Known() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPermission, p)
		}
		perms = append(perms, perm)
	}
	return perms, nil
}
