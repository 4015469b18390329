package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDelivery tracks the hand-off of purchased account credentials to a
// customer. Client/product fields are a point-in-time snapshot of the
// originating sale, not a live reference: later edits to the sale must not
// change what was actually delivered.
//
// DeliveredAt doubles as the delivered/pending flag and transitions exactly
// once, from NULL to a timestamp.
type AccountDelivery struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID uuid.UUID `gorm:"column:sale_id;type:uuid;not null;uniqueIndex"`

	Folio          string          `gorm:"column:folio;not null"`
	ClientName     string          `gorm:"column:client_name;not null"`
	ClientContact  string          `gorm:"column:client_contact;not null"`
	ProductDetails string          `gorm:"column:product_details;not null"`
	Quantity       int             `gorm:"column:quantity;not null;default:1"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	PaymentMethod  *string         `gorm:"column:payment_method"`
	PurchasedAt    time.Time       `gorm:"column:purchased_at;not null"`

	// Delivery payload: credentials handed to the customer. Restricted read.
	DeliveryUsername *string `gorm:"column:delivery_username"`
	DeliveryPassword *string `gorm:"column:delivery_password"`
	DeliveryEmail    *string `gorm:"column:delivery_email"`
	Instructions     *string `gorm:"column:instructions"`

	DeliveredAt   *time.Time `gorm:"column:delivered_at"`
	DeliveredByID *uuid.UUID `gorm:"column:delivered_by_id;type:uuid"`

	DeliveredBy *User `gorm:"foreignKey:DeliveredByID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Delivered reports whether the record has completed its single transition.
func (d AccountDelivery) Delivered() bool {
	return d.DeliveredAt != nil
}
