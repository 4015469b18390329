package tasks

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Repository defines persistence operations for the tasks table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, params pagination.Params, filters TaskFilters) ([]models.Task, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
