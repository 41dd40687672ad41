package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/identity"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMissingUserFields = errors.New("email, password, full name and role are required")
	ErrInvalidRole       = errors.New("invalid role")
	ErrUserNotFound      = errors.New("user not found")
)

// UserService provisions accounts across two systems that share no commit
// protocol: the identity service first, then the relational store via a single
// stored procedure. A relational failure triggers a compensating delete of the
// identity just created.
type UserService struct {
	db       *gorm.DB
	identity identity.Service
	catalog  *CatalogService
}

func NewUserService(db *gorm.DB, ids identity.Service, catalog *CatalogService) *UserService {
	return &UserService{db: db, identity: ids, catalog: catalog}
}

func (s *UserService) ProvisionUser(req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Role == "" {
		return nil, ErrMissingUserFields
	}
	if !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}

	// Phase 1: identity creation. A failure here is terminal and leaves
	// nothing behind, so the error goes back verbatim.
	authID, err := s.identity.CreateUser(identity.CreateUserParams{
		Email:          req.Email,
		Password:       req.Password,
		EmailConfirmed: true,
		Metadata: identity.Metadata{
			FullName: req.FullName,
			Phone:    req.Phone,
			Role:     req.Role,
		},
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: profile plus role-detail row in one atomic stored procedure.
	var localRoleID int64
	err = s.db.Raw(
		"SELECT create_user_profile_and_role(?, ?, ?, ?, ?, ?)",
		authID, req.Role, req.FullName, req.Phone, req.Email, req.FixedFee,
	).Scan(&localRoleID).Error
	if err != nil {
		if rbErr := s.identity.DeleteUser(authID); rbErr != nil {
			// Orphaned identity with no profile; needs manual repair.
			slog.Error("identity rollback failed after profile creation error",
				"auth_id", authID, "rollback_error", rbErr, "error", err)
			return nil, fmt.Errorf("failed to create user profile: %w", err)
		}
		return nil, fmt.Errorf("failed to create user profile, identity %s rolled back: %w", authID, err)
	}

	s.catalog.Invalidate()

	return &dto.CreateUserResponse{
		UserID:      authID,
		LocalRoleID: localRoleID,
		Message:     fmt.Sprintf("User %s created", req.FullName),
	}, nil
}

// UpdateUser applies the three sub-steps independently: identity credentials,
// profile display fields, coach fee. A later failure does not undo an earlier
// success.
func (s *UserService) UpdateUser(userID uuid.UUID, req *dto.UpdateUserRequest) error {
	if req.FullName == "" || req.Role == "" {
		return errors.New("full name and role are required")
	}
	if !models.ValidRole(req.Role) {
		return fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}

	if req.Email != "" || req.Password != "" {
		err := s.identity.UpdateUser(userID, identity.UpdateUserParams{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return err
		}
	}

	updates := map[string]interface{}{"full_name": req.FullName}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	result := s.db.Model(&models.Profile{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	if req.Role == models.RoleCoach && req.FixedFee != nil {
		err := s.db.Model(&models.Coach{}).
			Where("user_id = ?", userID).
			Update("fixed_fee", *req.FixedFee).Error
		if err != nil {
			return fmt.Errorf("failed to update coach fee: %w", err)
		}
	}

	s.catalog.Invalidate()
	return nil
}
