package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omega-store/omega-backend/pkg/enums"
)

// Order is a customer order that a payment confirmation may reference. Its
// status moves to PROCESSING when a linked confirmation is approved.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientName  string            `gorm:"column:client_name;not null"`
	Product     string            `gorm:"column:product;not null"`
	Details     *string           `gorm:"column:details"`
	Total       decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	Status      enums.OrderStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	CreatedByID *uuid.UUID        `gorm:"column:created_by_id;type:uuid"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
