package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Repository defines persistence operations for the payment_confirmations table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.PaymentConfirmation) (*models.PaymentConfirmation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentConfirmation, error)
	List(ctx context.Context, params pagination.Params, filters PaymentFilters) ([]models.PaymentConfirmation, error)
	UpdateReview(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
