package services

import (
	"testing"
	"time"

	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() *dto.BookingRequest {
	return &dto.BookingRequest{
		CourtID:   3,
		ClientID:  1,
		StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		Duration:  1.5,
	}
}

func TestBuildBookingFromCatalog(t *testing.T) {
	cat := testCatalog()

	coachID := int64(7)
	req := validBookingRequest()
	req.CoachID = &coachID
	req.AdultNumber = 4
	req.Notes = "birthday session"

	booking, err := buildBookingFromCatalog(cat, req)
	require.NoError(t, err)

	require.Equal(t, int64(3), booking.CourtID)
	require.Equal(t, "Court A", booking.CourtName)
	require.Equal(t, "Jl. Merdeka 1", booking.CourtAddress)
	require.Equal(t, "Budi Santoso", booking.ClientName)
	require.Equal(t, "0812111", booking.ClientPhone)
	require.NotNil(t, booking.CoachID)
	require.Equal(t, int64(7), *booking.CoachID)
	require.Equal(t, "Rina Wijaya", booking.CoachName)

	// Prices are snapshotted from the catalog and summed.
	require.Equal(t, 250000.0, booking.FinalCourtPrice)
	require.Equal(t, 150000.0, booking.FinalCoachFee)
	require.Equal(t, 400000.0, booking.TotalPrice)

	require.Equal(t, models.BookingPending, booking.Status)
	require.Equal(t, 4, booking.AdultNumber)
	require.Equal(t, "birthday session", booking.Notes)
}

func TestBuildBookingWithoutCoach(t *testing.T) {
	cat := testCatalog()

	booking, err := buildBookingFromCatalog(cat, validBookingRequest())
	require.NoError(t, err)

	require.Nil(t, booking.CoachID)
	require.Empty(t, booking.CoachName)
	require.Zero(t, booking.FinalCoachFee)
	require.Equal(t, 250000.0, booking.TotalPrice)
}

func TestBuildBookingPriceOverrides(t *testing.T) {
	cat := testCatalog()

	coachID := int64(7)
	price := 200000.0
	fee := 100000.0
	req := validBookingRequest()
	req.CoachID = &coachID
	req.FinalCourtPrice = &price
	req.FinalCoachFee = &fee

	booking, err := buildBookingFromCatalog(cat, req)
	require.NoError(t, err)

	require.Equal(t, 200000.0, booking.FinalCourtPrice)
	require.Equal(t, 100000.0, booking.FinalCoachFee)
	require.Equal(t, 300000.0, booking.TotalPrice)
}

func TestBuildBookingValidation(t *testing.T) {
	cat := testCatalog()

	req := validBookingRequest()
	req.CourtID = 0
	_, err := buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrCourtRequired)

	req = validBookingRequest()
	req.ClientID = 0
	_, err = buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrClientRequired)

	req = validBookingRequest()
	req.StartTime = time.Time{}
	_, err = buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrStartTimeRequired)

	req = validBookingRequest()
	req.Duration = 0
	_, err = buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrInvalidDuration)

	req = validBookingRequest()
	req.Duration = -2
	_, err = buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrInvalidDuration)

	req = validBookingRequest()
	req.Status = "archived"
	_, err = buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBuildBookingUnknownReferences(t *testing.T) {
	cat := testCatalog()

	req := validBookingRequest()
	req.CourtID = 99
	_, err := buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrUnknownCourt)

	req = validBookingRequest()
	badCoach := int64(99)
	req.CoachID = &badCoach
	_, err = buildBookingFromCatalog(cat, req)
	require.ErrorIs(t, err, ErrUnknownCoach)
}
