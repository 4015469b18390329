package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
)

// Service defines shared calendar operations.
type Service interface {
	Create(ctx context.Context, createdBy uuid.UUID, input CreateEventInput) (*EventResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	ListWindow(ctx context.Context, filters EventFilters) (*EventList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*EventResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a calendar service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("calendar repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, createdBy uuid.UUID, input CreateEventInput) (*EventResponse, error) {
	startsAt, err := parseTimestamp(input.StartsAt, "starts_at")
	if err != nil {
		return nil, err
	}
	endsAt, err := parseOptionalTimestamp(input.EndsAt, "ends_at")
	if err != nil {
		return nil, err
	}
	if endsAt != nil && !endsAt.After(startsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at").
			WithDetails(map[string]any{"field": "ends_at"})
	}

	event := &models.CalendarEvent{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Details:     input.Details,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		AllDay:      input.AllDay,
		CreatedByID: &createdBy,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist event")
	}
	resp := NewEventResponse(created)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "event not found")
	}
	resp := NewEventResponse(event)
	return &resp, nil
}

func (s *service) ListWindow(ctx context.Context, filters EventFilters) (*EventList, error) {
	if filters.From != nil && filters.To != nil && !filters.To.After(*filters.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window end must be after window start")
	}

	items, err := s.repo.ListWindow(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}

	list := &EventList{Items: make([]EventResponse, 0, len(items))}
	for _, event := range items {
		list.Items = append(list.Items, NewEventResponse(&event))
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*EventResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "event not found")
	}

	startsAt := existing.StartsAt
	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Details != nil {
		updates["details"] = *input.Details
	}
	if input.StartsAt != nil {
		parsed, parseErr := parseTimestamp(*input.StartsAt, "starts_at")
		if parseErr != nil {
			return nil, parseErr
		}
		startsAt = parsed
		updates["starts_at"] = parsed
	}
	if input.EndsAt != nil {
		if *input.EndsAt == "" {
			updates["ends_at"] = nil
		} else {
			parsed, parseErr := parseTimestamp(*input.EndsAt, "ends_at")
			if parseErr != nil {
				return nil, parseErr
			}
			if !parsed.After(startsAt) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at").
					WithDetails(map[string]any{"field": "ends_at"})
			}
			updates["ends_at"] = parsed
		}
	}
	if input.AllDay != nil {
		updates["all_day"] = *input.AllDay
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update event")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOrDependency(err, "event not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete event")
	}
	return nil
}

func parseTimestamp(raw, field string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid timestamp, expected RFC3339").
			WithDetails(map[string]any{"field": field})
	}
	return parsed.UTC(), nil
}

func parseOptionalTimestamp(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := parseTimestamp(*raw, field)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
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
