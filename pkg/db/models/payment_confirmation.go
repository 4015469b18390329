package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omega-store/omega-backend/pkg/enums"
)

// PaymentConfirmation is an uploaded proof-of-payment awaiting manual review.
// It may reference a sale, an order, both, or neither; standalone records are
// linked manually later. Only REJECTED records may be deleted, to preserve the
// audit trail.
type PaymentConfirmation struct {
	ID      uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID  *uuid.UUID `gorm:"column:sale_id;type:uuid"`
	OrderID *uuid.UUID `gorm:"column:order_id;type:uuid"`

	ProofImageURL  string          `gorm:"column:proof_image_url;not null"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	PaymentMethod  string          `gorm:"column:payment_method;not null"`
	ClientName     string          `gorm:"column:client_name;not null"`
	Product        string          `gorm:"column:product;not null"`
	Channel        *string         `gorm:"column:channel"`
	ManagerPercent decimal.Decimal `gorm:"column:manager_percent;type:numeric(5,2);not null;default:0"`
	Notes          *string         `gorm:"column:notes"`

	Status       enums.PaymentConfirmationStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	ReviewedByID *uuid.UUID                      `gorm:"column:reviewed_by_id;type:uuid"`
	ReviewedAt   *time.Time                      `gorm:"column:reviewed_at"`
	ReviewNotes  *string                         `gorm:"column:review_notes"`

	ReviewedBy *User `gorm:"foreignKey:ReviewedByID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
