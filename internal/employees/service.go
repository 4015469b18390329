package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/config"
	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
	"github.com/omega-store/omega-backend/pkg/security"
)

const tempPasswordLength = 16

// Service defines staff management operations.
type Service interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*CreatedEmployeeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error)
	List(ctx context.Context, params pagination.Params, filters EmployeeFilters) (*EmployeeList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*EmployeeResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds an employees service.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employees repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Create(ctx context.Context, input CreateEmployeeInput) (*CreatedEmployeeResponse, error) {
	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role").
			WithDetails(map[string]any{"field": "role"})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if existing, findErr := s.repo.FindByEmail(ctx, email); findErr == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "check email uniqueness")
	}

	password := input.Password
	var tempPassword *string
	if password == "" {
		generated, genErr := security.GenerateTempPassword(tempPasswordLength)
		if genErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, genErr, "generate temp password")
		}
		password = generated
		tempPassword = &generated
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist employee")
	}

	return &CreatedEmployeeResponse{
		EmployeeResponse: NewEmployeeResponse(created),
		TempPassword:     tempPassword,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "employee not found")
	}
	resp := NewEmployeeResponse(user)
	return &resp, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters EmployeeFilters) (*EmployeeList, error) {
	items, err := s.repo.List(ctx, params, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list employees")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &EmployeeList{Items: make([]EmployeeResponse, 0, len(items))}
	for i, user := range items {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: items[i-1].CreatedAt,
				ID:        items[i-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, NewEmployeeResponse(&user))
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*EmployeeResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOrDependency(err, "employee not found")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Role != nil {
		role, err := enums.ParseRole(*input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role").
				WithDetails(map[string]any{"field": "role"})
		}
		updates["role"] = role
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update employee")
	}
	return s.Get(ctx, id)
}

// Deactivate disables the account. Accounts are never hard-deleted so that
// sales and reviews keep their author references.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOrDependency(err, "employee not found")
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate employee")
	}
	return nil
}

func notFoundOrDependency(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
