package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a scheduled entry on the shared team calendar.
type CalendarEvent struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Details     *string    `gorm:"column:details"`
	StartsAt    time.Time  `gorm:"column:starts_at;not null"`
	EndsAt      *time.Time `gorm:"column:ends_at"`
	AllDay      bool       `gorm:"column:all_day;not null;default:false"`
	CreatedByID *uuid.UUID `gorm:"column:created_by_id;type:uuid"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
