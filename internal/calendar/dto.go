package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

// CreateEventInput is the payload for scheduling a calendar event.
type CreateEventInput struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Details  *string `json:"details" validate:"omitempty,max=2000"`
	StartsAt string  `json:"starts_at" validate:"required"`
	EndsAt   *string `json:"ends_at" validate:"omitempty"`
	AllDay   bool    `json:"all_day"`
}

// UpdateEventInput carries partial event updates.
type UpdateEventInput struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Details  *string `json:"details" validate:"omitempty,max=2000"`
	StartsAt *string `json:"starts_at" validate:"omitempty"`
	EndsAt   *string `json:"ends_at" validate:"omitempty"`
	AllDay   *bool   `json:"all_day"`
}

// EventFilters narrows event listings to a window.
type EventFilters struct {
	From *time.Time
	To   *time.Time
}

// EventResponse is the API shape of a calendar event.
type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Details     *string    `json:"details,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	AllDay      bool       `json:"all_day"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EventList is a page of events ordered by start time.
type EventList struct {
	Items []EventResponse `json:"items"`
}

// NewEventResponse maps the persistence model to the API shape.
func NewEventResponse(event *models.CalendarEvent) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Details:     event.Details,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		AllDay:      event.AllDay,
		CreatedByID: event.CreatedByID,
		CreatedAt:   event.CreatedAt,
	}
}
