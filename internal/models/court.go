package models

import "time"

// FieldCourt is a rentable court with a list price. Bookings snapshot the
// price at creation time, so editing a court never rewrites history.
type FieldCourt struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Address    string    `gorm:"type:text;not null" json:"address"`
	MapsURL    string    `gorm:"type:text" json:"maps_url"`
	FixedPrice float64   `gorm:"type:numeric;not null;default:0" json:"fixed_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
