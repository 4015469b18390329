package timeclock

import (
	"time"

	"github.com/google/uuid"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

// ClockInInput is the optional payload accompanying a clock-in.
type ClockInInput struct {
	Note *string `json:"note" validate:"omitempty,max=500"`
}

// ClockOutInput is the optional payload accompanying a clock-out.
type ClockOutInput struct {
	Note *string `json:"note" validate:"omitempty,max=500"`
}

// TimeEntryFilters narrows time entry listings.
type TimeEntryFilters struct {
	UserID *uuid.UUID
	Open   *bool
	From   *time.Time
	To     *time.Time
}

// TimeEntryResponse is the API shape of a time entry.
type TimeEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	ClockInAt  time.Time  `json:"clock_in_at"`
	ClockOutAt *time.Time `json:"clock_out_at,omitempty"`
	Note       *string    `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TimeEntryList is a cursor-paginated page of time entries.
type TimeEntryList struct {
	Items      []TimeEntryResponse `json:"items"`
	NextCursor *string             `json:"next_cursor,omitempty"`
}

// NewTimeEntryResponse maps the persistence model to the API shape.
func NewTimeEntryResponse(entry *models.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:         entry.ID,
		UserID:     entry.UserID,
		ClockInAt:  entry.ClockInAt,
		ClockOutAt: entry.ClockOutAt,
		Note:       entry.Note,
		CreatedAt:  entry.CreatedAt,
	}
}
