package deliveries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omega-store/omega-backend/pkg/db/models"
)

// UpdateDeliveryInput carries the editable handoff payload fields.
type UpdateDeliveryInput struct {
	DeliveryUsername *string `json:"delivery_username" validate:"omitempty,max=200"`
	DeliveryPassword *string `json:"delivery_password" validate:"omitempty,max=200"`
	DeliveryEmail    *string `json:"delivery_email" validate:"omitempty,email"`
	Instructions     *string `json:"instructions" validate:"omitempty,max=2000"`
}

// DeliveryFilters narrows delivery listings.
type DeliveryFilters struct {
	Pending *bool
}

// DeliveryResponse is the public shape of a delivery record.
type DeliveryResponse struct {
	ID               uuid.UUID       `json:"id"`
	SaleID           uuid.UUID       `json:"sale_id"`
	Folio            string          `json:"folio"`
	ClientName       string          `json:"client_name"`
	ClientContact    string          `json:"client_contact"`
	ProductDetails   string          `json:"product_details"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	PaymentMethod    *string         `json:"payment_method,omitempty"`
	PurchasedAt      time.Time       `json:"purchased_at"`
	DeliveryUsername *string         `json:"delivery_username,omitempty"`
	DeliveryPassword *string         `json:"delivery_password,omitempty"`
	DeliveryEmail    *string         `json:"delivery_email,omitempty"`
	Instructions     *string         `json:"instructions,omitempty"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty"`
	DeliveredByID    *uuid.UUID      `json:"delivered_by_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// DeliveryList is the full delivery set, newest first.
type DeliveryList struct {
	Items []DeliveryResponse `json:"items"`
}

// NewDeliveryResponse maps the persistence model to the API shape.
func NewDeliveryResponse(delivery *models.AccountDelivery) DeliveryResponse {
	return DeliveryResponse{
		ID:               delivery.ID,
		SaleID:           delivery.SaleID,
		Folio:            delivery.Folio,
		ClientName:       delivery.ClientName,
		ClientContact:    delivery.ClientContact,
		ProductDetails:   delivery.ProductDetails,
		Quantity:         delivery.Quantity,
		Price:            delivery.Price,
		PaymentMethod:    delivery.PaymentMethod,
		PurchasedAt:      delivery.PurchasedAt,
		DeliveryUsername: delivery.DeliveryUsername,
		DeliveryPassword: delivery.DeliveryPassword,
		DeliveryEmail:    delivery.DeliveryEmail,
		Instructions:     delivery.Instructions,
		DeliveredAt:      delivery.DeliveredAt,
		DeliveredByID:    delivery.DeliveredByID,
		CreatedAt:        delivery.CreatedAt,
	}
}
