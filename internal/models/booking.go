package models

import "time"

// Booking workflow status, set by staff. Distinct from the derived lifecycle
// label, which is computed from the clock on every read.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking references role-detail rows (clients.id / coaches.id), not profile
// UUIDs, and carries denormalized display fields copied from the referenced
// entities when the booking is written.
type Booking struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CourtID  int64  `gorm:"not null;index" json:"court_id"`
	ClientID int64  `gorm:"not null;index" json:"client_id"`
	CoachID  *int64 `gorm:"index" json:"coach_id"`

	CourtName    string `gorm:"size:255" json:"court_name"`
	CourtAddress string `gorm:"type:text" json:"court_address"`
	CourtMapsURL string `gorm:"type:text" json:"court_maps_url"`
	ClientName   string `gorm:"size:255" json:"client_name"`
	ClientPhone  string `gorm:"size:50" json:"client_phone"`
	CoachName    string `gorm:"size:255" json:"coach_name"`
	CoachPhone   string `gorm:"size:50" json:"coach_phone"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	Duration  float64   `gorm:"not null;default:1" json:"duration"`

	FinalCourtPrice float64 `gorm:"type:numeric;not null;default:0" json:"final_court_price"`
	FinalCoachFee   float64 `gorm:"type:numeric;not null;default:0" json:"final_coach_fee"`
	TotalPrice      float64 `gorm:"type:numeric;not null;default:0" json:"total_price"`

	IsWithPhotography bool   `gorm:"default:false" json:"is_with_photography"`
	AdultNumber       int    `gorm:"default:1" json:"adult_number"`
	ChildrenNumber    int    `gorm:"default:0" json:"children_number"`
	Status            string `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes             string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
