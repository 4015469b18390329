package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Service defines task board operations.
type Service interface {
	Create(ctx context.Context, createdBy uuid.UUID, input CreateTaskInput) (*TaskResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*TaskResponse, error)
	List(ctx context.Context, params pagination.Params, filters TaskFilters) (*TaskList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*TaskResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a tasks service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tasks repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, createdBy uuid.UUID, input CreateTaskInput) (*TaskResponse, error) {
	priority := enums.TaskPriorityMedium
	if input.Priority != "" {
		parsed, err := enums.ParseTaskPriority(input.Priority)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown priority").
				WithDetails(map[string]any{"field": "priority"})
		}
		priority = parsed
	}

	dueAt, err := parseOptionalTime(input.DueAt, "due_at")
	if err != nil {
		return nil, err
	}

	var assigneeID *uuid.UUID
	if input.AssigneeID != nil {
		parsed, parseErr := uuid.Parse(*input.AssigneeID)
		if parseErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid assignee id").
				WithDetails(map[string]any{"field": "assignee_id"})
		}
		assigneeID = &parsed
	}

	task := &models.Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Details:     input.Details,
		Status:      enums.TaskStatusPending,
		Priority:    priority,
		Tags:        pq.StringArray(normalizeTags(input.Tags)),
		AssigneeID:  assigneeID,
		CreatedByID: &createdBy,
		DueAt:       dueAt,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist task")
	}
	resp := NewTaskResponse(created)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "task not found")
	}
	resp := NewTaskResponse(task)
	return &resp, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters TaskFilters) (*TaskList, error) {
	items, err := s.repo.List(ctx, params, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &TaskList{Items: make([]TaskResponse, 0, len(items))}
	for i, task := range items {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: items[i-1].CreatedAt,
				ID:        items[i-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, NewTaskResponse(&task))
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*TaskResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "task not found")
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Details != nil {
		updates["details"] = *input.Details
	}
	if input.Priority != nil {
		priority, parseErr := enums.ParseTaskPriority(*input.Priority)
		if parseErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown priority").
				WithDetails(map[string]any{"field": "priority"})
		}
		updates["priority"] = priority
	}
	if input.Status != nil {
		status, parseErr := enums.ParseTaskStatus(*input.Status)
		if parseErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status").
				WithDetails(map[string]any{"field": "status"})
		}
		updates["status"] = status
		// completed_at tracks the DONE transition in both directions.
		if status == enums.TaskStatusDone && existing.Status != enums.TaskStatusDone {
			updates["completed_at"] = s.now().UTC()
		}
		if status != enums.TaskStatusDone && existing.Status == enums.TaskStatusDone {
			updates["completed_at"] = nil
		}
	}
	if input.Tags != nil {
		updates["tags"] = pq.StringArray(normalizeTags(input.Tags))
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == "" {
			updates["assignee_id"] = nil
		} else {
			assignee, parseErr := uuid.Parse(*input.AssigneeID)
			if parseErr != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid assignee id").
					WithDetails(map[string]any{"field": "assignee_id"})
			}
			updates["assignee_id"] = assignee
		}
	}
	if input.DueAt != nil {
		dueAt, parseErr := parseOptionalTime(input.DueAt, "due_at")
		if parseErr != nil {
			return nil, parseErr
		}
		updates["due_at"] = dueAt
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update task")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOrDependency(err, "task not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete task")
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func parseOptionalTime(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid timestamp, expected RFC3339").
			WithDetails(map[string]any{"field": field})
	}
	utc := parsed.UTC()
	return &utc, nil
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
