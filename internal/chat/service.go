package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/omega-store/omega-backend/pkg/db/models"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Service defines team chat operations.
type Service interface {
	Post(ctx context.Context, senderID uuid.UUID, input PostMessageInput) (*MessageResponse, error)
	List(ctx context.Context, params pagination.Params) (*MessageList, error)
}

type service struct {
	repo Repository
}

// NewService builds a chat service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("chat repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Post(ctx context.Context, senderID uuid.UUID, input PostMessageInput) (*MessageResponse, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body required").
			WithDetails(map[string]any{"field": "body"})
	}

	msg := &models.ChatMessage{
		ID:       uuid.New(),
		SenderID: senderID,
		Body:     body,
	}
	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist message")
	}
	resp := NewMessageResponse(created)
	return &resp, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*MessageList, error) {
	items, err := s.repo.List(ctx, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &MessageList{Items: make([]MessageResponse, 0, len(items))}
	for i, msg := range items {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: items[i-1].CreatedAt,
				ID:        items[i-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, NewMessageResponse(&msg))
	}
	return list, nil
}
