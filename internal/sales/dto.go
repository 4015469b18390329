package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
)

// CreateSaleInput is the request body for registering a sale.
type CreateSaleInput struct {
	ClientName        string  `json:"client_name" validate:"required,max=200"`
	ClientEmail       *string `json:"client_email" validate:"omitempty,email"`
	ClientPhone       *string `json:"client_phone" validate:"omitempty,max=40"`
	Product           string  `json:"product" validate:"required,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=2000"`
	Quantity          int     `json:"quantity" validate:"omitempty,min=1"`
	SalePrice         string  `json:"sale_price" validate:"required"`
	Cost              string  `json:"cost" validate:"omitempty"`
	Discount          string  `json:"discount" validate:"omitempty"`
	Taxes             string  `json:"taxes" validate:"omitempty"`
	PaymentCommission string  `json:"payment_commission" validate:"omitempty"`
	EmployeePayout    string  `json:"employee_payout" validate:"omitempty"`
	PaymentMethod     string  `json:"payment_method" validate:"omitempty,max=60"`
	SoldAt            *string `json:"sold_at" validate:"omitempty"`
}

// SaleFilters narrows sale listings.
type SaleFilters struct {
	Status *enums.SaleStatus
	Folio  *string
}

// StaffRef is a light user projection nested in sale responses.
type StaffRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SaleResponse is the public shape of a sale, including attending-staff,
// payment-staff and confirmation-status projections when the relations are
// loaded.
type SaleResponse struct {
	ID                 uuid.UUID                        `json:"id"`
	Folio              string                           `json:"folio"`
	ClientName         string                           `json:"client_name"`
	ClientEmail        *string                          `json:"client_email,omitempty"`
	ClientPhone        *string                          `json:"client_phone,omitempty"`
	Product            string                           `json:"product"`
	Description        *string                          `json:"description,omitempty"`
	Quantity           int                              `json:"quantity"`
	SalePrice          decimal.Decimal                  `json:"sale_price"`
	Cost               decimal.Decimal                  `json:"cost"`
	Discount           decimal.Decimal                  `json:"discount"`
	Taxes              decimal.Decimal                  `json:"taxes"`
	PaymentCommission  decimal.Decimal                  `json:"payment_commission"`
	EmployeePayout     decimal.Decimal                  `json:"employee_payout"`
	NetProfit          decimal.Decimal                  `json:"net_profit"`
	PaymentMethod      string                           `json:"payment_method,omitempty"`
	Status             enums.SaleStatus                 `json:"status"`
	AttendedByID       *uuid.UUID                       `json:"attended_by_id,omitempty"`
	AttendedBy         *StaffRef                        `json:"attended_by,omitempty"`
	PaymentHandledByID *uuid.UUID                       `json:"payment_handled_by_id,omitempty"`
	PaymentHandledBy   *StaffRef                        `json:"payment_handled_by,omitempty"`
	ConfirmationStatus *enums.PaymentConfirmationStatus `json:"confirmation_status,omitempty"`
	SoldAt             time.Time                        `json:"sold_at"`
	CreatedAt          time.Time                        `json:"created_at"`
}

// SaleList is the full sale set, newest first by transaction date.
type SaleList struct {
	Items []SaleResponse `json:"items"`
}

// NewSaleResponse maps the persistence model to the API shape.
func NewSaleResponse(sale *models.Sale) SaleResponse {
	resp := SaleResponse{
		ID:                 sale.ID,
		Folio:              sale.Folio,
		ClientName:         sale.ClientName,
		ClientEmail:        sale.ClientEmail,
		ClientPhone:        sale.ClientPhone,
		Product:            sale.Product,
		Description:        sale.Description,
		Quantity:           sale.Quantity,
		SalePrice:          sale.SalePrice,
		Cost:               sale.Cost,
		Discount:           sale.Discount,
		Taxes:              sale.Taxes,
		PaymentCommission:  sale.PaymentCommission,
		EmployeePayout:     sale.EmployeePayout,
		NetProfit:          sale.NetProfit,
		PaymentMethod:      sale.PaymentMethod,
		Status:             sale.Status,
		AttendedByID:       sale.AttendedByID,
		PaymentHandledByID: sale.PaymentHandledBy,
		SoldAt:             sale.SoldAt,
		CreatedAt:          sale.CreatedAt,
	}
	if sale.AttendedBy != nil {
		resp.AttendedBy = &StaffRef{ID: sale.AttendedBy.ID, Name: sale.AttendedBy.Name}
	}
	if sale.PaymentHandler != nil {
		resp.PaymentHandledBy = &StaffRef{ID: sale.PaymentHandler.ID, Name: sale.PaymentHandler.Name}
	}
	if sale.Confirmation != nil {
		resp.ConfirmationStatus = &sale.Confirmation.Status
	}
	return resp
}
