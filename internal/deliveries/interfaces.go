package deliveries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

// Repository defines persistence operations for the account_deliveries table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, delivery *models.AccountDelivery) (*models.AccountDelivery, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AccountDelivery, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*models.AccountDelivery, error)
	List(ctx context.Context, filters DeliveryFilters) ([]models.AccountDelivery, error)
	UpdatePayload(ctx context.Context, id uuid.UUID, updates map[string]any) error
	// MarkDelivered sets delivered_at only when it is still NULL and reports
	// whether the row transitioned.
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredBy uuid.UUID, at time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
