package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is a single clock-in/clock-out pair. At most one open entry
// (ClockOutAt NULL) may exist per user at any moment.
type TimeEntry struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	ClockInAt  time.Time  `gorm:"column:clock_in_at;not null"`
	ClockOutAt *time.Time `gorm:"column:clock_out_at"`
	Note       *string    `gorm:"column:note"`

	User *User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Open reports whether the entry is still running.
func (t TimeEntry) Open() bool {
	return t.ClockOutAt == nil
}
