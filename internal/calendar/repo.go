package calendar

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

// windowLimit caps how many events one window query returns.
const windowLimit = 500

type repository struct {
	db *gorm.DB
}

// NewRepository builds a calendar repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) ListWindow(ctx context.Context, filters EventFilters) ([]models.CalendarEvent, error) {
	query := r.db.WithContext(ctx).Model(&models.CalendarEvent{})

	if filters.From != nil {
		query = query.Where("starts_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("starts_at < ?", *filters.To)
	}

	var items []models.CalendarEvent
	err := query.
		Order("starts_at ASC, id ASC").
		Limit(windowLimit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CalendarEvent{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.CalendarEvent{}).Error
}
