package dto

import (
	"time"

	"github.com/basriibrahim1/h2padel-backend/internal/models"
)

type BookingRequest struct {
	CourtID  int64  `json:"court_id"`
	ClientID int64  `json:"client_id"`
	CoachID  *int64 `json:"coach_id"`

	StartTime time.Time `json:"start_time"`
	Duration  float64   `json:"duration"`

	// Price overrides; when nil the court price / coach fee is snapshotted
	// from the referenced entity.
	FinalCourtPrice *float64 `json:"final_court_price"`
	FinalCoachFee   *float64 `json:"final_coach_fee"`

	IsWithPhotography bool   `json:"is_with_photography"`
	AdultNumber       int    `json:"adult_number"`
	ChildrenNumber    int    `json:"children_number"`
	Status            string `json:"status"`
	Notes             string `json:"notes"`
}

// BookingResponse embeds the stored row plus the lifecycle label derived from
// the clock at serialization time. Lifecycle is never persisted.
type BookingResponse struct {
	models.Booking
	Lifecycle string `json:"lifecycle"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
