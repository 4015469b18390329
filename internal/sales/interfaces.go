package sales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

// Repository defines persistence operations for the sales table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	FindByFolio(ctx context.Context, folio string) (*models.Sale, error)
	List(ctx context.Context, filters SaleFilters) ([]models.Sale, error)
	// UpdateStatus transitions the sale and, when paymentHandledBy is set,
	// records which staff member drove the transition.
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SaleStatus, paymentHandledBy *uuid.UUID) error
}
