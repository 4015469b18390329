package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

// PostMessageInput is the payload for sending a chat message.
type PostMessageInput struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// MessageResponse is the API shape of a chat message.
type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageList is a cursor-paginated page of chat messages, newest first.
type MessageList struct {
	Items      []MessageResponse `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

// NewMessageResponse maps the persistence model to the API shape.
func NewMessageResponse(msg *models.ChatMessage) MessageResponse {
	resp := MessageResponse{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
	if msg.Sender != nil {
		resp.SenderName = msg.Sender.Name
	}
	return resp
}
