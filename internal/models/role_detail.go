package models

import (
	"time"

	"github.com/google/uuid"
)

// Coach is the role-detail row for a coach profile. Its bigint primary key is
// the id used as bookings.coach_id, distinct from the auth UUID.
type Coach struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FixedFee  float64   `gorm:"type:numeric;not null;default:0" json:"fixed_fee"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Profile   Profile   `gorm:"foreignKey:UserID" json:"-"`
}

// Client is the role-detail row for every non-coach profile.
type Client struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Profile   Profile   `gorm:"foreignKey:UserID" json:"-"`
}
