package chat

import (
	"context"

	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Repository defines persistence operations for the chat_messages table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error)
	List(ctx context.Context, params pagination.Params) ([]models.ChatMessage, error)
}
