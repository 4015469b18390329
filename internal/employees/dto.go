package employees

import (
	"time"

	"github.com/google/uuid"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

// CreateEmployeeInput registers a new staff account.
type CreateEmployeeInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Role     string  `json:"role" validate:"required"`
	Password string  `json:"password" validate:"omitempty,min=8,max=128"`
}

// UpdateEmployeeInput edits mutable staff fields.
type UpdateEmployeeInput struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Role     *string `json:"role" validate:"omitempty"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

// EmployeeFilters narrows staff listings.
type EmployeeFilters struct {
	Role     *enums.Role
	IsActive *bool
}

// EmployeeResponse is the public shape of a staff account. The password hash
// never leaves the service layer.
type EmployeeResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       *string    `json:"phone,omitempty"`
	Role        enums.Role `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreatedEmployeeResponse additionally carries the generated password when the
// caller did not supply one. It is shown exactly once.
type CreatedEmployeeResponse struct {
	EmployeeResponse
	TempPassword *string `json:"temp_password,omitempty"`
}

// EmployeeList is a cursor page of staff accounts.
type EmployeeList struct {
	Items      []EmployeeResponse `json:"items"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

// NewEmployeeResponse maps the persistence model to the API shape.
func NewEmployeeResponse(user *models.User) EmployeeResponse {
	return EmployeeResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
