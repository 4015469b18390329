package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

// CreateTaskInput is the payload for opening a task.
type CreateTaskInput struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Details    *string  `json:"details" validate:"omitempty,max=2000"`
	Priority   string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=50"`
	AssigneeID *string  `json:"assignee_id" validate:"omitempty,uuid"`
	DueAt      *string  `json:"due_at" validate:"omitempty"`
}

// UpdateTaskInput carries partial task updates.
type UpdateTaskInput struct {
	Title      *string  `json:"title" validate:"omitempty,max=200"`
	Details    *string  `json:"details" validate:"omitempty,max=2000"`
	Status     *string  `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	Priority   *string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=50"`
	AssigneeID *string  `json:"assignee_id" validate:"omitempty,uuid"`
	DueAt      *string  `json:"due_at" validate:"omitempty"`
}

// TaskFilters narrows task listings.
type TaskFilters struct {
	Status     *enums.TaskStatus
	Priority   *enums.TaskPriority
	AssigneeID *uuid.UUID
	Tag        *string
}

// TaskResponse is the API shape of a task.
type TaskResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Details     *string            `json:"details,omitempty"`
	Status      enums.TaskStatus   `json:"status"`
	Priority    enums.TaskPriority `json:"priority"`
	Tags        []string           `json:"tags"`
	AssigneeID  *uuid.UUID         `json:"assignee_id,omitempty"`
	CreatedByID *uuid.UUID         `json:"created_by_id,omitempty"`
	DueAt       *time.Time         `json:"due_at,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TaskList is a cursor-paginated page of tasks.
type TaskList struct {
	Items      []TaskResponse `json:"items"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

// NewTaskResponse maps the persistence model to the API shape.
func NewTaskResponse(task *models.Task) TaskResponse {
	tags := make([]string, len(task.Tags))
	copy(tags, task.Tags)
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Details:     task.Details,
		Status:      task.Status,
		Priority:    task.Priority,
		Tags:        tags,
		AssigneeID:  task.AssigneeID,
		CreatedByID: task.CreatedByID,
		DueAt:       task.DueAt,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
