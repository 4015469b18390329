package calendar

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

// Repository defines persistence operations for the calendar_events table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CalendarEvent, error)
	ListWindow(ctx context.Context, filters EventFilters) ([]models.CalendarEvent, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
