package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubCredRepo struct {
	byEmail map[string]*domain.Credential
	findErr error
}

func newStubCredRepo() *stubCredRepo {
	return &stubCredRepo{byEmail: make(map[string]*domain.Credential)}
}

func (r *stubCredRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCredRepo) Create(_ context.Context, c *domain.Credential) (*domain.Credential, error) {
	if _, exists := r.byEmail[c.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *c
	r.byEmail[c.Email] = &clone
	return &clone, nil
}

type stubSessionStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	loadErr error
	saveErr error
	deleted []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{data: make(map[string][]byte)}
}

func (s *stubSessionStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return v, nil
}

func (s *stubSessionStore) Save(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[key] = value
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type stubRecorder struct {
	events []domain.AuditEvent
}

func (r *stubRecorder) Record(e domain.AuditEvent) {
	r.events = append(r.events, e)
}

func (r *stubRecorder) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedCredential(t *testing.T, repo *stubCredRepo, email, password string, profile domain.UserProfile) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.byEmail[email] = &domain.Credential{Email: email, PasswordHash: string(hash), Profile: profile}
}

func newAuthSvc(repo *stubCredRepo, store *stubSessionStore, rec *stubRecorder) *AuthService {
	return NewAuthService(repo, store, rec, "secret", time.Hour, zerolog.Nop())
}

var salesProfile = domain.UserProfile{
	ID:                "u-002",
	Name:              "Sara Salem",
	Email:             "sales@mavera.sa",
	Role:              domain.RoleSalesAgent,
	CustomPermissions: []domain.Permission{domain.PermFinanceViewContracts},
	Avatar:            "SS",
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubCredRepo()
	store := newStubSessionStore()
	rec := &stubRecorder{}
	seedCredential(t, repo, "sales@mavera.sa", "sales123", salesProfile)
	svc := newAuthSvc(repo, store, rec)

	res, err := svc.Login(context.Background(), "  Sales@Mavera.SA ", "sales123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" || res.SessionID == "" {
		t.Fatalf("expected token and session id, got %+v", res)
	}
	if !res.User.Equal(&salesProfile) {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if _, ok := store.data[SessionKey(res.SessionID)]; !ok {
		t.Fatalf("expected session persisted under %q", SessionKey(res.SessionID))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sid"] != res.SessionID {
		t.Fatalf("expected sid %s, got %v", res.SessionID, claims["sid"])
	}
	if claims["role"] != string(domain.RoleSalesAgent) {
		t.Fatalf("expected role claim, got %v", claims["role"])
	}
	if got := rec.actions(); len(got) != 1 || got[0] != domain.AuditLogin {
		t.Fatalf("expected login audit, got %v", got)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubCredRepo()
	rec := &stubRecorder{}
	seedCredential(t, repo, "sales@mavera.sa", "sales123", salesProfile)
	svc := newAuthSvc(repo, newStubSessionStore(), rec)

	if _, err := svc.Login(context.Background(), "sales@mavera.sa", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if got := rec.actions(); len(got) != 1 || got[0] != domain.AuditLoginFailed {
		t.Fatalf("expected login_failed audit, got %v", got)
	}
}

func TestAuthService_Login_UnknownEmailIsInvalidCredentials(t *testing.T) {
	svc := newAuthSvc(newStubCredRepo(), newStubSessionStore(), &stubRecorder{})

	if _, err := svc.Login(context.Background(), "ghost@mavera.sa", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := newAuthSvc(newStubCredRepo(), newStubSessionStore(), &stubRecorder{})

	if _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RepoErrorPropagates(t *testing.T) {
	repo := newStubCredRepo()
	repo.findErr = errors.New("mongo down")
	svc := newAuthSvc(repo, newStubSessionStore(), &stubRecorder{})

	_, err := svc.Login(context.Background(), "sales@mavera.sa", "sales123")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := newStubCredRepo()
	store := newStubSessionStore()
	store.saveErr = errors.New("redis down")
	seedCredential(t, repo, "sales@mavera.sa", "sales123", salesProfile)
	svc := newAuthSvc(repo, store, &stubRecorder{})

	if _, err := svc.Login(context.Background(), "sales@mavera.sa", "sales123"); err == nil {
		t.Fatal("expected error when session cannot be persisted")
	}
}

// ---------------------------------------------------------------------------
// Session / Logout
// ---------------------------------------------------------------------------

func TestAuthService_SessionRoundTrip(t *testing.T) {
	repo := newStubCredRepo()
	store := newStubSessionStore()
	seedCredential(t, repo, "sales@mavera.sa", "sales123", salesProfile)
	svc := newAuthSvc(repo, store, &stubRecorder{})

	res, err := svc.Login(context.Background(), "sales@mavera.sa", "sales123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.Session(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("session restore failed: %v", err)
	}
	if !user.Equal(&salesProfile) {
		t.Fatalf("restored profile differs: %+v", user)
	}
}

func TestAuthService_Session_Unknown(t *testing.T) {
	svc := newAuthSvc(newStubCredRepo(), newStubSessionStore(), &stubRecorder{})

	if _, err := svc.Session(context.Background(), "nope"); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Session(context.Background(), ""); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for empty id, got %v", err)
	}
}

func TestAuthService_Session_CorruptEntryDiscarded(t *testing.T) {
	store := newStubSessionStore()
	store.data[SessionKey("sid-1")] = []byte("{not json")
	rec := &stubRecorder{}
	svc := newAuthSvc(newStubCredRepo(), store, rec)

	_, err := svc.Session(context.Background(), "sid-1")
	if !errors.Is(err, domain.ErrUnauthenticated) || !errors.Is(err, domain.ErrSessionDiscarded) {
		t.Fatalf("expected unauthenticated discarded session, got %v", err)
	}
	if _, ok := store.data[SessionKey("sid-1")]; ok {
		t.Fatal("expected corrupt entry removed")
	}
	if got := rec.actions(); len(got) != 1 || got[0] != domain.AuditSessionDiscarded {
		t.Fatalf("expected session_discarded audit, got %v", got)
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newStubCredRepo()
	store := newStubSessionStore()
	rec := &stubRecorder{}
	seedCredential(t, repo, "sales@mavera.sa", "sales123", salesProfile)
	svc := newAuthSvc(repo, store, rec)

	res, _ := svc.Login(context.Background(), "sales@mavera.sa", "sales123")
	if err := svc.Logout(context.Background(), res.SessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Session(context.Background(), res.SessionID); err != domain.ErrUnauthenticated {
		t.Fatalf("expected session gone after logout, got %v", err)
	}
	last := rec.events[len(rec.events)-1]
	if last.Action != domain.AuditLogout || last.ActorID != salesProfile.ID {
		t.Fatalf("unexpected logout audit: %+v", last)
	}
}

// ---------------------------------------------------------------------------
// CreateUser
// ---------------------------------------------------------------------------

func TestAuthService_CreateUser_Success(t *testing.T) {
	repo := newStubCredRepo()
	svc := newAuthSvc(repo, newStubSessionStore(), &stubRecorder{})

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:              "Noura Fahad",
		Email:             "Noura@Mavera.sa",
		Password:          "pass1234",
		Role:              "coordinator",
		Roles:             []string{"call_center", "coordinator"},
		CustomPermissions: []string{"reports.view"},
		ActorID:           "u-001",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
	if user.Avatar != "NF" {
		t.Fatalf("expected derived initials NF, got %q", user.Avatar)
	}
	want := []domain.Role{domain.RoleCoordinator, domain.RoleCallCenter}
	if len(user.Roles) != len(want) || user.Roles[0] != want[0] || user.Roles[1] != want[1] {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}

	stored := repo.byEmail["noura@mavera.sa"]
	if stored == nil {
		t.Fatal("expected credential stored under normalized email")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass1234")) != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestAuthService_CreateUser_Validation(t *testing.T) {
	svc := newAuthSvc(newStubCredRepo(), newStubSessionStore(), &stubRecorder{})
	ctx := context.Background()

	missing := []ports.CreateUserInput{
		{Email: "a@b.c", Password: "x", Role: "coordinator"},
		{Name: "   ", Email: "a@b.c", Password: "x", Role: "coordinator"},
		{Name: "A", Password: "x", Role: "coordinator"},
		{Name: "A", Email: "a@b.c", Role: "coordinator"},
	}
	for _, in := range missing {
		_, err := svc.CreateUser(ctx, in)
		if !errors.Is(err, domain.ErrInvalidUser) {
			t.Fatalf("expected ErrInvalidUser for %+v, got %v", in, err)
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("missing fields must not read as a failed login: %v", err)
		}
	}
	if _, err := svc.CreateUser(ctx, ports.CreateUserInput{Name: "A", Email: "a@b.c", Password: "x", Role: "janitor"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, ports.CreateUserInput{Name: "A", Email: "a@b.c", Password: "x", Role: "coordinator", CustomPermissions: []string{"everything"}}); !errors.Is(err, domain.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
}

func TestAuthService_CreateUser_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubCredRepo(), newStubSessionStore(), &stubRecorder{})
	in := ports.CreateUserInput{Name: "Bob", Email: "bob@mavera.sa", Password: "pass", Role: "call_center"}

	_, _ = svc.CreateUser(context.Background(), in)
	if _, err := svc.CreateUser(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
