package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

// CreateOrderInput is the request body for registering an order.
type CreateOrderInput struct {
	ClientName string  `json:"client_name" validate:"required,max=200"`
	Product    string  `json:"product" validate:"required,max=200"`
	Details    *string `json:"details" validate:"omitempty,max=2000"`
	Total      string  `json:"total" validate:"omitempty"`
}

// UpdateOrderStatusInput moves an order along its lifecycle.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING COMPLETED CANCELLED"`
}

// OrderFilters narrows order listings.
type OrderFilters struct {
	Status *enums.OrderStatus
}

// OrderResponse is the public shape of an order.
type OrderResponse struct {
	ID          uuid.UUID         `json:"id"`
	ClientName  string            `json:"client_name"`
	Product     string            `json:"product"`
	Details     *string           `json:"details,omitempty"`
	Total       decimal.Decimal   `json:"total"`
	Status      enums.OrderStatus `json:"status"`
	CreatedByID *uuid.UUID        `json:"created_by_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// OrderList is a cursor page of orders.
type OrderList struct {
	Items      []OrderResponse `json:"items"`
	NextCursor *string         `json:"next_cursor,omitempty"`
}

// NewOrderResponse maps the persistence model to the API shape.
func NewOrderResponse(order *models.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		ClientName:  order.ClientName,
		Product:     order.Product,
		Details:     order.Details,
		Total:       order.Total,
		Status:      order.Status,
		CreatedByID: order.CreatedByID,
		CreatedAt:   order.CreatedAt,
	}
}
