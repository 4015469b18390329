package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omega-store/omega-backend/pkg/enums"
)

// Sale records a commercial transaction. NetProfit is always recomputed
// server-side from the monetary components; the stored value is derived data.
type Sale struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Folio       string    `gorm:"column:folio;type:text;not null;uniqueIndex:idx_sales_folio"`
	ClientName  string    `gorm:"column:client_name;not null"`
	ClientPhone *string   `gorm:"column:client_phone"`
	ClientEmail *string   `gorm:"column:client_email"`
	Product     string    `gorm:"column:product;not null"`
	Description *string   `gorm:"column:description"`
	Quantity    int       `gorm:"column:quantity;not null;default:1"`

	SalePrice         decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2);not null"`
	Cost              decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null;default:0"`
	Discount          decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	Taxes             decimal.Decimal `gorm:"column:taxes;type:numeric(12,2);not null;default:0"`
	PaymentCommission decimal.Decimal `gorm:"column:payment_commission;type:numeric(12,2);not null;default:0"`
	EmployeePayout    decimal.Decimal `gorm:"column:employee_payout;type:numeric(12,2);not null;default:0"`
	NetProfit         decimal.Decimal `gorm:"column:net_profit;type:numeric(12,2);not null;default:0"`

	PaymentMethod    string           `gorm:"column:payment_method;not null"`
	Status           enums.SaleStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	AttendedByID     *uuid.UUID       `gorm:"column:attended_by_id;type:uuid"`
	PaymentHandledBy *uuid.UUID       `gorm:"column:payment_handled_by_id;type:uuid"`
	SoldAt           time.Time        `gorm:"column:sold_at;not null"`

	AttendedBy     *User                `gorm:"foreignKey:AttendedByID"`
	PaymentHandler *User                `gorm:"foreignKey:PaymentHandledBy"`
	Delivery       *AccountDelivery     `gorm:"foreignKey:SaleID"`
	Confirmation   *PaymentConfirmation `gorm:"foreignKey:SaleID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
