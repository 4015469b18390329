package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/pagination"
)

// Service defines order-level operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput, actorID uuid.UUID) (*OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error)
	List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateOrderStatusInput) (*OrderResponse, error)
}

type service struct {
	repo Repository
}

// NewService builds an orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput, actorID uuid.UUID) (*OrderResponse, error) {
	total := decimal.Zero
	if raw := strings.TrimSpace(input.Total); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total must be a non-negative decimal string").
				WithDetails(map[string]any{"field": "total"})
		}
		total = parsed
	}

	order := &models.Order{
		ID:          uuid.New(),
		ClientName:  strings.TrimSpace(input.ClientName),
		Product:     strings.TrimSpace(input.Product),
		Details:     input.Details,
		Total:       total,
		Status:      enums.OrderStatusPending,
		CreatedByID: &actorID,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}
	resp := NewOrderResponse(created)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "order not found")
	}
	resp := NewOrderResponse(order)
	return &resp, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	items, err := s.repo.List(ctx, params, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &OrderList{Items: make([]OrderResponse, 0, len(items))}
	for i, order := range items {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: items[i-1].CreatedAt,
				ID:        items[i-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, NewOrderResponse(&order))
	}
	return list, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateOrderStatusInput) (*OrderResponse, error) {
	status, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"field": "status"})
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "order not found")
	}
	if order.Status == enums.OrderStatusCancelled || order.Status == enums.OrderStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already in a terminal state").
			WithDetails(map[string]any{"current": order.Status})
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return s.Get(ctx, id)
}

func notFoundOrDependency(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
