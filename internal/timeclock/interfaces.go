package timeclock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Repository defines persistence operations for the time_entries table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.TimeEntry) (*models.TimeEntry, error)
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.TimeEntry, error)
	Close(ctx context.Context, id uuid.UUID, at time.Time, note *string) (bool, error)
	List(ctx context.Context, params pagination.Params, filters TimeEntryFilters) ([]models.TimeEntry, error)
}
