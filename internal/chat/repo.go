package chat

import (
	"context"

	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a chat repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.ChatMessage, error) {
	query := r.db.WithContext(ctx).Model(&models.ChatMessage{}).Preload("Sender")

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

	var items []models.ChatMessage
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
