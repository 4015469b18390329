package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Service defines shift-tracking operations.
type Service interface {
	ClockIn(ctx context.Context, userID uuid.UUID, input ClockInInput) (*TimeEntryResponse, error)
	ClockOut(ctx context.Context, userID uuid.UUID, input ClockOutInput) (*TimeEntryResponse, error)
	Current(ctx context.Context, userID uuid.UUID) (*TimeEntryResponse, error)
	List(ctx context.Context, params pagination.Params, filters TimeEntryFilters) (*TimeEntryList, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a timeclock service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("timeclock repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// ClockIn opens a new entry. A user can only be on the clock once; the
// partial unique index on open entries backstops the pre-check under
// concurrent requests.
func (s *service) ClockIn(ctx context.Context, userID uuid.UUID, input ClockInInput) (*TimeEntryResponse, error) {
	if _, err := s.repo.FindOpenByUser(ctx, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "already clocked in")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check open entry")
	}

	entry := &models.TimeEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ClockInAt: s.now().UTC(),
		Note:      input.Note,
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err, "idx_time_entries_open") {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "already clocked in")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist time entry")
	}
	resp := NewTimeEntryResponse(created)
	return &resp, nil
}

// ClockOut closes the user's open entry. Clocking out without an open entry
// is a state conflict, not a not-found, since the entry collection itself
// exists for every user.
func (s *service) ClockOut(ctx context.Context, userID uuid.UUID, input ClockOutInput) (*TimeEntryResponse, error) {
	open, err := s.repo.FindOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no open time entry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find open entry")
	}

	closedAt := s.now().UTC()
	closed, err := s.repo.Close(ctx, open.ID, closedAt, input.Note)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close time entry")
	}
	if !closed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no open time entry")
	}

	open.ClockOutAt = &closedAt
	if input.Note != nil {
		open.Note = input.Note
	}
	resp := NewTimeEntryResponse(open)
	return &resp, nil
}

// Current returns the user's open entry, or a not-found when off the clock.
func (s *service) Current(ctx context.Context, userID uuid.UUID) (*TimeEntryResponse, error) {
	open, err := s.repo.FindOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open time entry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find open entry")
	}
	resp := NewTimeEntryResponse(open)
	return &resp, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters TimeEntryFilters) (*TimeEntryList, error) {
	items, err := s.repo.List(ctx, params, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list time entries")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &TimeEntryList{Items: make([]TimeEntryResponse, 0, len(items))}
	for i, entry := range items {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: items[i-1].CreatedAt,
				ID:        items[i-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, NewTimeEntryResponse(&entry))
	}
	return list, nil
}
