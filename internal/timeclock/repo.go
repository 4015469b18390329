package timeclock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a timeclock repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.TimeEntry) (*models.TimeEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND clock_out_at IS NULL", userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Close stamps clock_out_at only while the entry is still open, so a repeat
// clock-out can be detected from the affected row count.
func (r *repository) Close(ctx context.Context, id uuid.UUID, at time.Time, note *string) (bool, error) {
	updates := map[string]any{"clock_out_at": at}
	if note != nil {
		updates["note"] = *note
	}
	result := r.db.WithContext(ctx).
		Model(&models.TimeEntry{}).
		Where("id = ? AND clock_out_at IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters TimeEntryFilters) ([]models.TimeEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeEntry{})

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Open != nil {
		if *filters.Open {
			query = query.Where("clock_out_at IS NULL")
		} else {
			query = query.Where("clock_out_at IS NOT NULL")
		}
	}
	if filters.From != nil {
		query = query.Where("clock_in_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("clock_in_at < ?", *filters.To)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var items []models.TimeEntry
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
