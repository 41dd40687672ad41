package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	cat := &Catalog{
		Clients: []PersonOption{
			{ID: 1, UserID: uuid.New(), Name: "Budi Santoso", Phone: "0812111", Email: "budi@example.com"},
		},
		Coaches: []PersonOption{
			{ID: 7, UserID: uuid.New(), Name: "Rina Wijaya", Phone: "0812222", Email: "rina@example.com", FixedFee: 150000},
		},
		Courts: []CourtOption{
			{ID: 3, Name: "Court A", Address: "Jl. Merdeka 1", MapsURL: "https://maps.example/a", FixedPrice: 250000},
		},
	}
	cat.index()
	return cat
}

func TestApplyFieldChangeCourtAutofill(t *testing.T) {
	cat := testCatalog()

	d, err := cat.ApplyFieldChange(BookingDraft{}, "court_id", "3")
	require.NoError(t, err)
	require.Equal(t, int64(3), d.CourtID)
	require.Equal(t, "Court A", d.CourtName)
	require.Equal(t, "Jl. Merdeka 1", d.CourtAddress)
	require.Equal(t, "https://maps.example/a", d.CourtMapsURL)
	require.Equal(t, 250000.0, d.FinalCourtPrice)

	// Clearing the selection clears everything derived from it.
	d, err = cat.ApplyFieldChange(d, "court_id", "")
	require.NoError(t, err)
	require.Zero(t, d.CourtID)
	require.Empty(t, d.CourtName)
	require.Zero(t, d.FinalCourtPrice)
}

func TestApplyFieldChangeClientAndCoach(t *testing.T) {
	cat := testCatalog()

	d, err := cat.ApplyFieldChange(BookingDraft{}, "client_id", "1")
	require.NoError(t, err)
	require.Equal(t, "Budi Santoso", d.ClientName)
	require.Equal(t, "0812111", d.ClientPhone)

	d, err = cat.ApplyFieldChange(d, "coach_id", "7")
	require.NoError(t, err)
	require.Equal(t, "Rina Wijaya", d.CoachName)
	require.Equal(t, "0812222", d.CoachPhone)
	require.Equal(t, 150000.0, d.FinalCoachFee)

	d, err = cat.ApplyFieldChange(d, "coach_id", "0")
	require.NoError(t, err)
	require.Empty(t, d.CoachName)
	require.Zero(t, d.FinalCoachFee)
	// The earlier client selection is untouched.
	require.Equal(t, "Budi Santoso", d.ClientName)
}

func TestApplyFieldChangeUnknownReferences(t *testing.T) {
	cat := testCatalog()

	_, err := cat.ApplyFieldChange(BookingDraft{}, "court_id", "99")
	require.ErrorIs(t, err, ErrUnknownCourt)

	_, err = cat.ApplyFieldChange(BookingDraft{}, "client_id", "99")
	require.ErrorIs(t, err, ErrUnknownClient)

	_, err = cat.ApplyFieldChange(BookingDraft{}, "coach_id", "99")
	require.ErrorIs(t, err, ErrUnknownCoach)
}

func TestApplyFieldChangeScalars(t *testing.T) {
	cat := testCatalog()

	d, err := cat.ApplyFieldChange(BookingDraft{}, "duration", "1.5")
	require.NoError(t, err)
	require.Equal(t, 1.5, d.Duration)

	d, err = cat.ApplyFieldChange(d, "start_time", "2024-01-01T10:00:00Z")
	require.NoError(t, err)
	require.Equal(t, 2024, d.StartTime.Year())

	d, err = cat.ApplyFieldChange(d, "is_with_photography", "true")
	require.NoError(t, err)
	require.True(t, d.IsWithPhotography)

	d, err = cat.ApplyFieldChange(d, "adult_number", "4")
	require.NoError(t, err)
	require.Equal(t, 4, d.AdultNumber)

	d, err = cat.ApplyFieldChange(d, "status", "confirmed")
	require.NoError(t, err)
	require.Equal(t, "confirmed", d.Status)

	_, err = cat.ApplyFieldChange(d, "status", "archived")
	require.Error(t, err)

	_, err = cat.ApplyFieldChange(d, "duration", "abc")
	require.Error(t, err)

	_, err = cat.ApplyFieldChange(d, "no_such_field", "x")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestFormatRupiah(t *testing.T) {
	require.Equal(t, "0", FormatRupiah(0))
	require.Equal(t, "500", FormatRupiah(500))
	require.Equal(t, "7.500", FormatRupiah(7500))
	require.Equal(t, "150.000", FormatRupiah(150000))
	require.Equal(t, "1.250.000", FormatRupiah(1250000))
	require.Equal(t, "-7.500", FormatRupiah(-7500))
}
