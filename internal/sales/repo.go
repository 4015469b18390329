package sales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.withRelations(ctx).
		Preload("Delivery").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) FindByFolio(ctx context.Context, folio string) (*models.Sale, error) {
	var sale models.Sale
	err := r.withRelations(ctx).
		Where("folio = ?", folio).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns every sale matching the filters, newest transaction first,
// with staff and confirmation relations loaded.
func (r *repository) List(ctx context.Context, filters SaleFilters) ([]models.Sale, error) {
	query := r.withRelations(ctx)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Folio != nil {
		query = query.Where("folio = ?", *filters.Folio)
	}

	var items []models.Sale
	err := query.
		Order("sold_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SaleStatus, paymentHandledBy *uuid.UUID) error {
	updates := map[string]any{"status": status}
	if paymentHandledBy != nil {
		updates["payment_handled_by_id"] = *paymentHandledBy
	}
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Preload("AttendedBy").
		Preload("PaymentHandler").
		Preload("Confirmation")
}
