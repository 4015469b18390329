package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/internal/employees"
	pkgAuth "github.com/omega-store/omega-backend/pkg/auth"
	"github.com/omega-store/omega-backend/pkg/config"
	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
	"github.com/omega-store/omega-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "unit-test-secret",
	Issuer:            "omega-backend-test",
	ExpirationMinutes: 15,
}

var testArgonConfig = config.PasswordConfig{
	ArgonMemoryKB:    8 * 1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type stubUsersRepo struct {
	user    *models.User
	updates map[string]any
}

func (s *stubUsersRepo) WithTx(tx *gorm.DB) employees.Repository {
	return s
}

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return user, nil
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUsersRepo) List(ctx context.Context, params pagination.Params, filters employees.EmployeeFilters) ([]models.User, error) {
	return nil, nil
}

func (s *stubUsersRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

type stubSessions struct {
	active  map[string]string
	rotated [][2]string
	ended   []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{active: map[string]string{}}
}

func (s *stubSessions) Start(ctx context.Context, jti, userID string) error {
	s.active[jti] = userID
	return nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldJTI, newJTI, userID string) error {
	delete(s.active, oldJTI)
	s.active[newJTI] = userID
	s.rotated = append(s.rotated, [2]string{oldJTI, newJTI})
	return nil
}

func (s *stubSessions) End(ctx context.Context, jti string) error {
	delete(s.active, jti)
	s.ended = append(s.ended, jti)
	return nil
}

func (s *stubSessions) HasSession(ctx context.Context, jti string) (bool, error) {
	_, ok := s.active[jti]
	return ok, nil
}

func newActiveUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testArgonConfig)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        "ana@omegastore.lat",
		PasswordHash: hash,
		Name:         "Ana",
		Role:         enums.RoleAdminGeneral,
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	user := newActiveUser(t, "contrasena-123")
	repo := &stubUsersRepo{user: user}
	sessions := newStubSessions()
	svc, err := NewService(repo, sessions, testJWTConfig, nil)
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginInput{
		Email:    "  Ana@OmegaStore.lat ",
		Password: "contrasena-123",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected minted token")
	}
	if resp.User.ID != user.ID || resp.User.Role != enums.RoleAdminGeneral {
		t.Fatalf("unexpected session user %+v", resp.User)
	}
	if len(sessions.active) != 1 {
		t.Fatalf("expected one active session got %d", len(sessions.active))
	}
	if repo.updates == nil || repo.updates["last_login_at"] == nil {
		t.Fatalf("expected last_login_at update")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("minted token must parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject mismatch")
	}
	if _, ok := sessions.active[claims.ID]; !ok {
		t.Fatalf("token jti must match the started session")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := newActiveUser(t, "contrasena-123")
	svc, _ := NewService(&stubUsersRepo{user: user}, newStubSessions(), testJWTConfig, nil)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ana@omegastore.lat",
		Password: "otra-cosa",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := NewService(&stubUsersRepo{}, newStubSessions(), testJWTConfig, nil)
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "nadie@omegastore.lat",
		Password: "lo-que-sea",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
	if typed.Message() != "invalid credentials" {
		t.Fatalf("unknown email must not leak, got %q", typed.Message())
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	user := newActiveUser(t, "contrasena-123")
	user.IsActive = false
	svc, _ := NewService(&stubUsersRepo{user: user}, newStubSessions(), testJWTConfig, nil)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ana@omegastore.lat",
		Password: "contrasena-123",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := newActiveUser(t, "contrasena-123")
	repo := &stubUsersRepo{user: user}
	sessions := newStubSessions()
	svc, _ := NewService(repo, sessions, testJWTConfig, nil)

	login, err := svc.Login(context.Background(), LoginInput{
		Email:    "ana@omegastore.lat",
		Password: "contrasena-123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.AccessToken)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if refreshed.AccessToken == login.AccessToken {
		t.Fatalf("refresh must mint a new token")
	}
	if len(sessions.rotated) != 1 {
		t.Fatalf("expected one rotation got %d", len(sessions.rotated))
	}
	if len(sessions.active) != 1 {
		t.Fatalf("old session must be gone, active=%d", len(sessions.active))
	}
}

func TestRefreshRevokedSession(t *testing.T) {
	user := newActiveUser(t, "contrasena-123")
	sessions := newStubSessions()
	svc, _ := NewService(&stubUsersRepo{user: user}, sessions, testJWTConfig, nil)

	login, err := svc.Login(context.Background(), LoginInput{
		Email:    "ana@omegastore.lat",
		Password: "contrasena-123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Revoke everything, as a logout would.
	sessions.active = map[string]string{}

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := NewService(&stubUsersRepo{}, newStubSessions(), testJWTConfig, nil)
	_, err := svc.Refresh(context.Background(), "not-a-token")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestLogout(t *testing.T) {
	sessions := newStubSessions()
	sessions.active["some-jti"] = "user"
	svc, _ := NewService(&stubUsersRepo{}, sessions, testJWTConfig, nil)

	if err := svc.Logout(context.Background(), "some-jti"); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(sessions.active) != 0 {
		t.Fatalf("session must be revoked")
	}
}
