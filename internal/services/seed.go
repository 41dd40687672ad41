package services

import (
	"log/slog"

	"github.com/basriibrahim1/h2padel-backend/internal/config"
	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"gorm.io/gorm"
)

// SeedSuperadmin provisions the bootstrap superadmin from config when no
// superadmin profile exists yet. Runs the normal provisioning path, rollback
// contract included.
func SeedSuperadmin(db *gorm.DB, users *UserService, cfg *config.Config) {
	if cfg.SuperadminEmail == "" || cfg.SuperadminPassword == "" {
		return
	}

	var count int64
	if err := db.Model(&models.Profile{}).Where("role = ?", models.RoleSuperadmin).Count(&count).Error; err != nil {
		slog.Error("superadmin seed check failed", "error", err)
		return
	}
	if count > 0 {
		return
	}

	resp, err := users.ProvisionUser(&dto.CreateUserRequest{
		Email:    cfg.SuperadminEmail,
		Password: cfg.SuperadminPassword,
		FullName: cfg.SuperadminName,
		Role:     models.RoleSuperadmin,
	})
	if err != nil {
		slog.Error("superadmin seed failed", "error", err)
		return
	}
	slog.Info("superadmin seeded", "user_id", resp.UserID)
}
