package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuthUser lives in its own table, apart from profiles. Even with the local
// provider the provisioning flow treats it as a foreign system: no shared
// transaction with the relational phase.
type AuthUser struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email          string         `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash   string         `gorm:"not null"`
	EmailConfirmed bool           `gorm:"default:false"`
	Metadata       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (AuthUser) TableName() string { return "auth_users" }

// LocalStore is a self-hosted Service backed by the auth_users table.
type LocalStore struct {
	db *gorm.DB
}

func NewLocalStore(db *gorm.DB) *LocalStore {
	return &LocalStore{db: db}
}

// Migrate creates the auth_users table. Only called when the local provider
// is selected.
func (s *LocalStore) Migrate() error {
	return s.db.AutoMigrate(&AuthUser{})
}

func (s *LocalStore) CreateUser(p CreateUserParams) (uuid.UUID, error) {
	var existing AuthUser
	if err := s.db.Where("email = ?", p.Email).First(&existing).Error; err == nil {
		return uuid.Nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	meta, err := json.Marshal(p.Metadata)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	user := AuthUser{
		ID:             uuid.New(),
		Email:          p.Email,
		PasswordHash:   string(hash),
		EmailConfirmed: p.EmailConfirmed,
		Metadata:       datatypes.JSON(meta),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create auth user: %w", err)
	}
	return user.ID, nil
}

func (s *LocalStore) UpdateUser(id uuid.UUID, p UpdateUserParams) error {
	var user AuthUser
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	updates := map[string]interface{}{}
	if p.Email != "" && p.Email != user.Email {
		var other AuthUser
		if err := s.db.Where("email = ? AND id <> ?", p.Email, id).First(&other).Error; err == nil {
			return ErrEmailTaken
		}
		updates["email"] = p.Email
	}
	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&user).Updates(updates).Error
}

func (s *LocalStore) DeleteUser(id uuid.UUID) error {
	result := s.db.Delete(&AuthUser{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *LocalStore) VerifyPassword(email, password string) (uuid.UUID, error) {
	var user AuthUser
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return user.ID, nil
}
