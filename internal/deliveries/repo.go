package deliveries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a deliveries repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, delivery *models.AccountDelivery) (*models.AccountDelivery, error) {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AccountDelivery, error) {
	var delivery models.AccountDelivery
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&delivery).Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *repository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*models.AccountDelivery, error) {
	var delivery models.AccountDelivery
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		First(&delivery).Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

// List returns every delivery matching the filters, newest first.
func (r *repository) List(ctx context.Context, filters DeliveryFilters) ([]models.AccountDelivery, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountDelivery{})

	if filters.Pending != nil {
		if *filters.Pending {
			query = query.Where("delivered_at IS NULL")
		} else {
			query = query.Where("delivered_at IS NOT NULL")
		}
	}

	var items []models.AccountDelivery
	err := query.
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdatePayload(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.AccountDelivery{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredBy uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AccountDelivery{}).
		Where("id = ? AND delivered_at IS NULL", id).
		Updates(map[string]any{
			"delivered_at":    at,
			"delivered_by_id": deliveredBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.AccountDelivery{}).Error
}
