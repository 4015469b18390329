package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the authenticated identity embedded in auth responses.
type SessionUser struct {
	ID    uuid.UUID  `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  enums.Role `json:"role"`
}

// LoginResponse carries the minted token and its owner.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        SessionUser `json:"user"`
}

// NewSessionUser maps the persistence model to the session identity.
func NewSessionUser(user *models.User) SessionUser {
	return SessionUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
