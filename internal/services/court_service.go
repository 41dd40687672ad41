package services

import (
	"errors"
	"fmt"

	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"gorm.io/gorm"
)

var ErrCourtNotFound = errors.New("court not found")

type CourtService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewCourtService(db *gorm.DB, catalog *CatalogService) *CourtService {
	return &CourtService{db: db, catalog: catalog}
}

func (s *CourtService) List() ([]models.FieldCourt, error) {
	var courts []models.FieldCourt
	if err := s.db.Order("id").Find(&courts).Error; err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return courts, nil
}

func (s *CourtService) Create(req *dto.CourtRequest) (*models.FieldCourt, error) {
	if req.Name == "" || req.Address == "" || req.FixedPrice == nil {
		return nil, errors.New("court name, address and price are required")
	}

	court := models.FieldCourt{
		Name:       req.Name,
		Address:    req.Address,
		MapsURL:    req.MapsURL,
		FixedPrice: *req.FixedPrice,
	}
	if err := s.db.Create(&court).Error; err != nil {
		return nil, fmt.Errorf("failed to create court: %w", err)
	}

	s.catalog.Invalidate()
	return &court, nil
}

func (s *CourtService) Update(id int64, req *dto.CourtRequest) (*models.FieldCourt, error) {
	var court models.FieldCourt
	if err := s.db.First(&court, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to fetch court: %w", err)
	}

	if req.Name != "" {
		court.Name = req.Name
	}
	if req.Address != "" {
		court.Address = req.Address
	}
	if req.MapsURL != "" {
		court.MapsURL = req.MapsURL
	}
	if req.FixedPrice != nil {
		court.FixedPrice = *req.FixedPrice
	}

	if err := s.db.Save(&court).Error; err != nil {
		return nil, fmt.Errorf("failed to update court: %w", err)
	}

	s.catalog.Invalidate()
	return &court, nil
}
