package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrUnknownCourt  = errors.New("selected court does not exist")
	ErrUnknownClient = errors.New("selected client does not exist")
	ErrUnknownCoach  = errors.New("selected coach does not exist")
	ErrUnknownField  = errors.New("unknown booking field")
)

const optionsCacheKey = "h2padel:options"
const optionsCacheTTL = 30 * time.Second

// PersonOption is a flattened role-detail row joined with its profile. ID is
// the role-detail primary key, the value bookings reference; UserID is the
// auth UUID, needed only when editing the person itself.
type PersonOption struct {
	ID       int64     `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	FixedFee float64   `json:"fixed_fee"`
}

type CourtOption struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	MapsURL    string  `json:"maps_url"`
	FixedPrice float64 `json:"fixed_price"`
}

// Catalog is the in-memory index behind the booking form: every foreign-key
// field change is resolved against it so the denormalized display fields are
// copied in one step, never as cascading partial updates.
type Catalog struct {
	Clients []PersonOption
	Coaches []PersonOption
	Courts  []CourtOption

	clientsByID map[int64]PersonOption
	coachesByID map[int64]PersonOption
	courtsByID  map[int64]CourtOption
}

func (c *Catalog) index() {
	c.clientsByID = make(map[int64]PersonOption, len(c.Clients))
	for _, p := range c.Clients {
		c.clientsByID[p.ID] = p
	}
	c.coachesByID = make(map[int64]PersonOption, len(c.Coaches))
	for _, p := range c.Coaches {
		c.coachesByID[p.ID] = p
	}
	c.courtsByID = make(map[int64]CourtOption, len(c.Courts))
	for _, d := range c.Courts {
		c.courtsByID[d.ID] = d
	}
}

// BookingDraft mirrors the booking form. Zero FK ids mean "no selection".
type BookingDraft struct {
	CourtID      int64
	CourtName    string
	CourtAddress string
	CourtMapsURL string

	ClientID    int64
	ClientName  string
	ClientPhone string

	CoachID    int64
	CoachName  string
	CoachPhone string

	StartTime time.Time
	Duration  float64

	FinalCourtPrice float64
	FinalCoachFee   float64

	IsWithPhotography bool
	AdultNumber       int
	ChildrenNumber    int
	Status            string
	Notes             string
}

// ApplyFieldChange returns the draft after a single field edit. Foreign-key
// fields copy the referenced entity's display fields atomically; an empty or
// zero value clears the selection and everything derived from it.
func (c *Catalog) ApplyFieldChange(d BookingDraft, field, value string) (BookingDraft, error) {
	switch field {
	case "court_id":
		id, err := parseFK(value)
		if err != nil {
			return d, fmt.Errorf("invalid court id %q", value)
		}
		if id == 0 {
			d.CourtID, d.CourtName, d.CourtAddress, d.CourtMapsURL = 0, "", "", ""
			d.FinalCourtPrice = 0
			return d, nil
		}
		court, ok := c.courtsByID[id]
		if !ok {
			return d, ErrUnknownCourt
		}
		d.CourtID = court.ID
		d.CourtName = court.Name
		d.CourtAddress = court.Address
		d.CourtMapsURL = court.MapsURL
		d.FinalCourtPrice = court.FixedPrice
		return d, nil

	case "client_id":
		id, err := parseFK(value)
		if err != nil {
			return d, fmt.Errorf("invalid client id %q", value)
		}
		if id == 0 {
			d.ClientID, d.ClientName, d.ClientPhone = 0, "", ""
			return d, nil
		}
		client, ok := c.clientsByID[id]
		if !ok {
			return d, ErrUnknownClient
		}
		d.ClientID = client.ID
		d.ClientName = client.Name
		d.ClientPhone = client.Phone
		return d, nil

	case "coach_id":
		id, err := parseFK(value)
		if err != nil {
			return d, fmt.Errorf("invalid coach id %q", value)
		}
		if id == 0 {
			d.CoachID, d.CoachName, d.CoachPhone = 0, "", ""
			d.FinalCoachFee = 0
			return d, nil
		}
		coach, ok := c.coachesByID[id]
		if !ok {
			return d, ErrUnknownCoach
		}
		d.CoachID = coach.ID
		d.CoachName = coach.Name
		d.CoachPhone = coach.Phone
		d.FinalCoachFee = coach.FixedFee
		return d, nil

	case "start_time":
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return d, fmt.Errorf("invalid start time %q", value)
		}
		d.StartTime = t
		return d, nil

	case "duration":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return d, fmt.Errorf("invalid duration %q", value)
		}
		d.Duration = f
		return d, nil

	case "final_court_price":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return d, fmt.Errorf("invalid court price %q", value)
		}
		d.FinalCourtPrice = f
		return d, nil

	case "final_coach_fee":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return d, fmt.Errorf("invalid coach fee %q", value)
		}
		d.FinalCoachFee = f
		return d, nil

	case "is_with_photography":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return d, fmt.Errorf("invalid photography flag %q", value)
		}
		d.IsWithPhotography = b
		return d, nil

	case "adult_number":
		n, err := strconv.Atoi(value)
		if err != nil {
			return d, fmt.Errorf("invalid adult number %q", value)
		}
		d.AdultNumber = n
		return d, nil

	case "children_number":
		n, err := strconv.Atoi(value)
		if err != nil {
			return d, fmt.Errorf("invalid children number %q", value)
		}
		d.ChildrenNumber = n
		return d, nil

	case "status":
		if !models.ValidBookingStatus(value) {
			return d, fmt.Errorf("invalid status %q", value)
		}
		d.Status = value
		return d, nil

	case "notes":
		d.Notes = value
		return d, nil
	}

	return d, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func parseFK(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// CatalogService loads the select-widget data. Redis is optional; when absent
// every Options call hits the database.
type CatalogService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCatalogService(db *gorm.DB, rdb *redis.Client) *CatalogService {
	return &CatalogService{db: db, rdb: rdb}
}

type personRow struct {
	ID       int64
	UserID   uuid.UUID
	FullName string
	Phone    string
	Email    string
	FixedFee float64
}

// Load builds a fresh catalog from the relational store.
func (s *CatalogService) Load() (*Catalog, error) {
	var clientRows []personRow
	err := s.db.Table("clients").
		Select("clients.id, clients.user_id, profiles.full_name, profiles.phone, profiles.email").
		Joins("JOIN profiles ON profiles.id = clients.user_id").
		Where("profiles.role = ?", models.RoleClient).
		Order("clients.id").
		Scan(&clientRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}

	var coachRows []personRow
	err = s.db.Table("coaches").
		Select("coaches.id, coaches.user_id, coaches.fixed_fee, profiles.full_name, profiles.phone, profiles.email").
		Joins("JOIN profiles ON profiles.id = coaches.user_id").
		Where("profiles.role = ?", models.RoleCoach).
		Order("coaches.id").
		Scan(&coachRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load coaches: %w", err)
	}

	var courts []models.FieldCourt
	if err := s.db.Order("id").Find(&courts).Error; err != nil {
		return nil, fmt.Errorf("failed to load courts: %w", err)
	}

	cat := &Catalog{}
	for _, r := range clientRows {
		cat.Clients = append(cat.Clients, PersonOption{
			ID: r.ID, UserID: r.UserID, Name: r.FullName, Phone: r.Phone, Email: r.Email,
		})
	}
	for _, r := range coachRows {
		cat.Coaches = append(cat.Coaches, PersonOption{
			ID: r.ID, UserID: r.UserID, Name: r.FullName, Phone: r.Phone, Email: r.Email, FixedFee: r.FixedFee,
		})
	}
	for _, d := range courts {
		cat.Courts = append(cat.Courts, CourtOption{
			ID: d.ID, Name: d.Name, Address: d.Address, MapsURL: d.MapsURL, FixedPrice: d.FixedPrice,
		})
	}
	cat.index()
	return cat, nil
}

// Options returns the three select lists, cached briefly in Redis.
func (s *CatalogService) Options() (*dto.OptionsResponse, error) {
	ctx := context.Background()

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, optionsCacheKey).Bytes(); err == nil {
			var cached dto.OptionsResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	cat, err := s.Load()
	if err != nil {
		return nil, err
	}

	resp := &dto.OptionsResponse{
		Clients: make([]dto.SelectOption, 0, len(cat.Clients)),
		Coaches: make([]dto.SelectOption, 0, len(cat.Coaches)),
		Courts:  make([]dto.SelectOption, 0, len(cat.Courts)),
	}
	for _, p := range cat.Clients {
		resp.Clients = append(resp.Clients, dto.SelectOption{
			Value: strconv.FormatInt(p.ID, 10),
			Label: fmt.Sprintf("%s (%s)", p.Name, p.Phone),
		})
	}
	for _, p := range cat.Coaches {
		resp.Coaches = append(resp.Coaches, dto.SelectOption{
			Value: strconv.FormatInt(p.ID, 10),
			Label: fmt.Sprintf("%s (Fee: Rp. %s)", p.Name, FormatRupiah(p.FixedFee)),
		})
	}
	for _, d := range cat.Courts {
		resp.Courts = append(resp.Courts, dto.SelectOption{
			Value: strconv.FormatInt(d.ID, 10),
			Label: fmt.Sprintf("%s (Rp. %s)", d.Name, FormatRupiah(d.FixedPrice)),
		})
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, optionsCacheKey, raw, optionsCacheTTL).Err(); err != nil {
				slog.Warn("failed to cache options", "error", err)
			}
		}
	}
	return resp, nil
}

// Invalidate drops the cached options after a client, coach, or court changes.
func (s *CatalogService) Invalidate() {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.Background(), optionsCacheKey).Err(); err != nil {
		slog.Warn("failed to invalidate options cache", "error", err)
	}
}

// FormatRupiah renders an amount with id-ID thousand separators, as the select
// labels display it.
func FormatRupiah(amount float64) string {
	n := int64(amount)
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
