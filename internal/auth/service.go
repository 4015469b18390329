package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/internal/employees"
	pkgAuth "github.com/omega-store/omega-backend/pkg/auth"
	"github.com/omega-store/omega-backend/pkg/config"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/logger"
	"github.com/omega-store/omega-backend/pkg/security"
)

// sessionManager is the server-side session surface the auth flows need.
type sessionManager interface {
	Start(ctx context.Context, jti, userID string) error
	Rotate(ctx context.Context, oldJTI, newJTI, userID string) error
	End(ctx context.Context, jti string) error
	HasSession(ctx context.Context, jti string) (bool, error)
}

// Service defines authentication operations.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResponse, error)
	Refresh(ctx context.Context, rawToken string) (*LoginResponse, error)
	Logout(ctx context.Context, jti string) error
}

type service struct {
	users    employees.Repository
	sessions sessionManager
	jwtCfg   config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(users employees.Repository, sessions sessionManager, jwtCfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		users:    users,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login verifies credentials and mints a session-backed access token. Bad
// email and bad password produce the same response so the endpoint cannot be
// used to probe for accounts.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	invalidCredentials := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.IsActive {
		return nil, invalidCredentials
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, invalidCredentials
	}

	jti := uuid.NewString()
	now := s.now().UTC()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if err := s.sessions.Start(ctx, jti, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start session")
	}

	if err := s.users.Update(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil {
		// Login already succeeded; the timestamp is informational.
		if s.logg != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "auth.last_login_update_failed")
		}
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		User:        NewSessionUser(user),
	}, nil
}

// Refresh rotates the session behind a still-trusted token. The signature must
// verify but expiry is not checked, so a recently expired token can be
// exchanged as long as its session has not been revoked.
func (s *service) Refresh(ctx context.Context, rawToken string) (*LoginResponse, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, rawToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	live, err := s.sessions.HasSession(ctx, claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
	}
	if !live {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
	}

	newJTI := uuid.NewString()
	now := s.now().UTC()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    newJTI,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if err := s.sessions.Rotate(ctx, claims.ID, newJTI, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		User:        NewSessionUser(user),
	}, nil
}

// Logout revokes the session for the presented token's jti.
func (s *service) Logout(ctx context.Context, jti string) error {
	if err := s.sessions.End(ctx, jti); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "end session")
	}
	return nil
}
