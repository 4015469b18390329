package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/omega-store/omega-backend/pkg/enums"
)

// Task is a unit of work assigned to an employee.
type Task struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string             `gorm:"column:title;not null"`
	Details      *string            `gorm:"column:details"`
	AssigneeID  *uuid.UUID         `gorm:"column:assignee_id;type:uuid"`
	CreatedByID *uuid.UUID         `gorm:"column:created_by_id;type:uuid"`
	Status      enums.TaskStatus   `gorm:"column:status;type:text;not null;default:'PENDING'"`
	Priority    enums.TaskPriority `gorm:"column:priority;type:text;not null;default:'MEDIUM'"`
	Tags        pq.StringArray     `gorm:"column:tags;type:text[];default:'{}'"`
	DueAt       *time.Time         `gorm:"column:due_at"`
	CompletedAt *time.Time         `gorm:"column:completed_at"`

	Assignee  *User `gorm:"foreignKey:AssigneeID"`
	CreatedBy *User `gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
