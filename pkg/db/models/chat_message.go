package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one line in the internal team chat.
type ChatMessage struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID uuid.UUID `gorm:"column:sender_id;type:uuid;not null"`
	Body     string    `gorm:"column:body;not null"`

	Sender *User `gorm:"foreignKey:SenderID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
