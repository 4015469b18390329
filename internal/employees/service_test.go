package employees

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/config"
	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
	"github.com/omega-store/omega-backend/pkg/security"
)

// weakArgonConfig keeps test hashing fast.
var weakArgonConfig = config.PasswordConfig{
	ArgonMemoryKB:    8 * 1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type stubUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
	updates map[string]any
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (s *stubUsersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUsersRepo) List(ctx context.Context, params pagination.Params, filters EmployeeFilters) ([]models.User, error) {
	return nil, nil
}

func (s *stubUsersRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	user, ok := s.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if active, present := updates["is_active"].(bool); present {
		user.IsActive = active
	}
	return nil
}

func TestCreateEmployeeGeneratesTempPassword(t *testing.T) {
	repo := newStubUsersRepo()
	svc, err := NewService(repo, weakArgonConfig)
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	resp, err := svc.Create(context.Background(), CreateEmployeeInput{
		Email: "Nuevo@OmegaStore.lat",
		Name:  "Nuevo Empleado",
		Role:  "EMPLEADO",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.TempPassword == nil || *resp.TempPassword == "" {
		t.Fatalf("expected generated temp password")
	}
	if resp.Email != "nuevo@omegastore.lat" {
		t.Fatalf("expected lowercased email got %q", resp.Email)
	}
	if !resp.IsActive {
		t.Fatalf("new accounts start active")
	}

	stored := repo.byEmail["nuevo@omegastore.lat"]
	match, err := security.VerifyPassword(*resp.TempPassword, stored.PasswordHash)
	if err != nil || !match {
		t.Fatalf("temp password must verify against stored hash (match=%v err=%v)", match, err)
	}
}

func TestCreateEmployeeExplicitPassword(t *testing.T) {
	repo := newStubUsersRepo()
	svc, _ := NewService(repo, weakArgonConfig)

	resp, err := svc.Create(context.Background(), CreateEmployeeInput{
		Email:    "admin@omegastore.lat",
		Name:     "Admin",
		Role:     "ADMIN_GENERAL",
		Password: "super-secreta-123",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.TempPassword != nil {
		t.Fatalf("explicit password must not echo a temp password")
	}
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	repo := newStubUsersRepo()
	existing := &models.User{ID: uuid.New(), Email: "dup@omegastore.lat"}
	repo.byEmail[existing.Email] = existing
	repo.byID[existing.ID] = existing
	svc, _ := NewService(repo, weakArgonConfig)

	_, err := svc.Create(context.Background(), CreateEmployeeInput{
		Email: "dup@omegastore.lat",
		Name:  "Duplicado",
		Role:  "EMPLEADO",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict got %v", err)
	}
}

func TestCreateEmployeeUnknownRole(t *testing.T) {
	svc, _ := NewService(newStubUsersRepo(), weakArgonConfig)
	_, err := svc.Create(context.Background(), CreateEmployeeInput{
		Email: "x@omegastore.lat",
		Name:  "X",
		Role:  "SUPERADMIN",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestDeactivateEmployee(t *testing.T) {
	repo := newStubUsersRepo()
	user := &models.User{ID: uuid.New(), Email: "a@omegastore.lat", IsActive: true, Role: enums.RoleEmpleado}
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	svc, _ := NewService(repo, weakArgonConfig)

	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if user.IsActive {
		t.Fatalf("expected account deactivated")
	}
}

func TestDeactivateMissingEmployee(t *testing.T) {
	svc, _ := NewService(newStubUsersRepo(), weakArgonConfig)
	err := svc.Deactivate(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}
