package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

// CreatePaymentInput is the request body for submitting a proof of payment.
// Sale and order links are both optional; a record with neither is standalone.
type CreatePaymentInput struct {
	SaleID         *uuid.UUID `json:"sale_id" validate:"omitempty"`
	OrderID        *uuid.UUID `json:"order_id" validate:"omitempty"`
	ProofImageURL  string     `json:"proof_image_url" validate:"required,url"`
	Amount         string     `json:"amount" validate:"required"`
	PaymentMethod  string     `json:"payment_method" validate:"required,max=60"`
	ClientName     string     `json:"client_name" validate:"required,max=200"`
	Product        string     `json:"product" validate:"required,max=200"`
	Channel        *string    `json:"channel" validate:"omitempty,max=60"`
	ManagerPercent string     `json:"manager_percent" validate:"required"`
	Notes          *string    `json:"notes" validate:"omitempty,max=2000"`
}

// ReviewPaymentInput resolves a pending confirmation.
type ReviewPaymentInput struct {
	Decision    string  `json:"decision" validate:"required,oneof=CONFIRMED REJECTED"`
	ReviewNotes *string `json:"review_notes" validate:"omitempty,max=2000"`
}

// PaymentFilters narrows confirmation listings.
type PaymentFilters struct {
	Status *enums.PaymentConfirmationStatus
}

// PaymentResponse is the public shape of a payment confirmation.
type PaymentResponse struct {
	ID             uuid.UUID                       `json:"id"`
	SaleID         *uuid.UUID                      `json:"sale_id,omitempty"`
	OrderID        *uuid.UUID                      `json:"order_id,omitempty"`
	ProofImageURL  string                          `json:"proof_image_url"`
	Amount         decimal.Decimal                 `json:"amount"`
	PaymentMethod  string                          `json:"payment_method"`
	ClientName     string                          `json:"client_name"`
	Product        string                          `json:"product"`
	Channel        *string                         `json:"channel,omitempty"`
	ManagerPercent decimal.Decimal                 `json:"manager_percent"`
	Notes          *string                         `json:"notes,omitempty"`
	Status         enums.PaymentConfirmationStatus `json:"status"`
	ReviewedByID   *uuid.UUID                      `json:"reviewed_by_id,omitempty"`
	ReviewedAt     *time.Time                      `json:"reviewed_at,omitempty"`
	ReviewNotes    *string                         `json:"review_notes,omitempty"`
	CreatedAt      time.Time                       `json:"created_at"`
}

// PaymentList is a cursor page of payment confirmations.
type PaymentList struct {
	Items      []PaymentResponse `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

// NewPaymentResponse maps the persistence model to the API shape.
func NewPaymentResponse(payment *models.PaymentConfirmation) PaymentResponse {
	return PaymentResponse{
		ID:             payment.ID,
		SaleID:         payment.SaleID,
		OrderID:        payment.OrderID,
		ProofImageURL:  payment.ProofImageURL,
		Amount:         payment.Amount,
		PaymentMethod:  payment.PaymentMethod,
		ClientName:     payment.ClientName,
		Product:        payment.Product,
		Channel:        payment.Channel,
		ManagerPercent: payment.ManagerPercent,
		Notes:          payment.Notes,
		Status:         payment.Status,
		ReviewedByID:   payment.ReviewedByID,
		ReviewedAt:     payment.ReviewedAt,
		ReviewNotes:    payment.ReviewNotes,
		CreatedAt:      payment.CreatedAt,
	}
}
