package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCourtRequired     = errors.New("court is required")
	ErrClientRequired    = errors.New("client is required")
	ErrStartTimeRequired = errors.New("start time is required")
	ErrInvalidDuration   = errors.New("duration must be greater than zero")
	ErrInvalidStatus     = errors.New("invalid booking status")
)

type BookingService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewBookingService(db *gorm.DB, catalog *CatalogService) *BookingService {
	return &BookingService{db: db, catalog: catalog}
}

func (s *BookingService) List(limit, offset int) (*dto.BookingListResponse, error) {
	var total int64
	if err := s.db.Model(&models.Booking{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	err := s.db.Order("id DESC").Limit(limit).Offset(offset).Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	now := time.Now()
	resp := &dto.BookingListResponse{
		Bookings: make([]dto.BookingResponse, 0, len(bookings)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, toBookingResponse(b, now))
	}
	return resp, nil
}

func (s *BookingService) Get(id int64) (*dto.BookingResponse, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	resp := toBookingResponse(booking, time.Now())
	return &resp, nil
}

func (s *BookingService) Create(req *dto.BookingRequest) (*dto.BookingResponse, error) {
	booking, err := s.buildBooking(req)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	resp := toBookingResponse(*booking, time.Now())
	return &resp, nil
}

func (s *BookingService) Update(id int64, req *dto.BookingRequest) (*dto.BookingResponse, error) {
	var existing models.Booking
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	booking, err := s.buildBooking(req)
	if err != nil {
		return nil, err
	}
	booking.ID = existing.ID
	booking.CreatedAt = existing.CreatedAt

	if err := s.db.Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	resp := toBookingResponse(*booking, time.Now())
	return &resp, nil
}

func (s *BookingService) Delete(id int64) error {
	result := s.db.Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *BookingService) buildBooking(req *dto.BookingRequest) (*models.Booking, error) {
	cat, err := s.catalog.Load()
	if err != nil {
		return nil, err
	}
	return buildBookingFromCatalog(cat, req)
}

// buildBookingFromCatalog validates the request and resolves every foreign key
// through the catalog so the denormalized display fields are copied in one step.
func buildBookingFromCatalog(cat *Catalog, req *dto.BookingRequest) (*models.Booking, error) {
	if req.CourtID == 0 {
		return nil, ErrCourtRequired
	}
	if req.ClientID == 0 {
		return nil, ErrClientRequired
	}
	if req.StartTime.IsZero() {
		return nil, ErrStartTimeRequired
	}
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	status := req.Status
	if status == "" {
		status = models.BookingPending
	}
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	draft := BookingDraft{
		StartTime:         req.StartTime,
		Duration:          req.Duration,
		IsWithPhotography: req.IsWithPhotography,
		AdultNumber:       req.AdultNumber,
		ChildrenNumber:    req.ChildrenNumber,
		Status:            status,
		Notes:             req.Notes,
	}

	draft, err := cat.ApplyFieldChange(draft, "court_id", strconv.FormatInt(req.CourtID, 10))
	if err != nil {
		return nil, err
	}
	draft, err = cat.ApplyFieldChange(draft, "client_id", strconv.FormatInt(req.ClientID, 10))
	if err != nil {
		return nil, err
	}
	if req.CoachID != nil {
		draft, err = cat.ApplyFieldChange(draft, "coach_id", strconv.FormatInt(*req.CoachID, 10))
		if err != nil {
			return nil, err
		}
	}

	// Staff may override the snapshotted amounts.
	if req.FinalCourtPrice != nil {
		draft.FinalCourtPrice = *req.FinalCourtPrice
	}
	if req.FinalCoachFee != nil {
		draft.FinalCoachFee = *req.FinalCoachFee
	}

	booking := &models.Booking{
		CourtID:           draft.CourtID,
		ClientID:          draft.ClientID,
		CourtName:         draft.CourtName,
		CourtAddress:      draft.CourtAddress,
		CourtMapsURL:      draft.CourtMapsURL,
		ClientName:        draft.ClientName,
		ClientPhone:       draft.ClientPhone,
		CoachName:         draft.CoachName,
		CoachPhone:        draft.CoachPhone,
		StartTime:         draft.StartTime,
		Duration:          draft.Duration,
		FinalCourtPrice:   draft.FinalCourtPrice,
		FinalCoachFee:     draft.FinalCoachFee,
		TotalPrice:        draft.FinalCourtPrice + draft.FinalCoachFee,
		IsWithPhotography: draft.IsWithPhotography,
		AdultNumber:       draft.AdultNumber,
		ChildrenNumber:    draft.ChildrenNumber,
		Status:            draft.Status,
		Notes:             draft.Notes,
	}
	if draft.CoachID != 0 {
		coachID := draft.CoachID
		booking.CoachID = &coachID
	}
	return booking, nil
}

func toBookingResponse(b models.Booking, now time.Time) dto.BookingResponse {
	return dto.BookingResponse{
		Booking:   b,
		Lifecycle: DeriveLifecycle(now, b.StartTime, b.Duration),
	}
}
