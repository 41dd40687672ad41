package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/basriibrahim1/h2padel-backend/internal/config"
	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/identity"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// AuthService verifies credentials against the identity service and issues
// this backend's own token pair. Refresh tokens are stored hashed and rotated
// on every refresh.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	identity identity.Service
}

func NewAuthService(db *gorm.DB, cfg *config.Config, ids identity.Service) *AuthService {
	return &AuthService{db: db, cfg: cfg, identity: ids}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	authID, err := s.identity.VerifyPassword(req.Email, req.Password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", authID).Error; err != nil {
		// Identity exists but no profile row: provisioning never finished.
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&profile)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}

	return s.generateTokenPair(&profile)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// Session returns the profile behind an access token's subject claim.
func (s *AuthService) Session(userID uuid.UUID) (*dto.SessionResponse, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	resp := sessionResponse(&profile)
	return &resp, nil
}

func (s *AuthService) generateTokenPair(profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(profile)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(profile)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         sessionResponse(profile),
	}, nil
}

func (s *AuthService) generateAccessToken(profile *models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":   profile.ID.String(),
		"email": profile.Email,
		"role":  profile.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(profile *models.Profile) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    profile.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func sessionResponse(profile *models.Profile) dto.SessionResponse {
	return dto.SessionResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Role:      profile.Role,
		Dashboard: models.DashboardPath(profile.Role),
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
