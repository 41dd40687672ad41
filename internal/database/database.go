package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/basriibrahim1/h2padel-backend/internal/config"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for the booking schema and installs the stored
// procedure used by user provisioning.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.Profile{},
		&models.Coach{},
		&models.Client{},
		&models.FieldCourt{},
		&models.Booking{},
		&models.RefreshToken{},
		&models.SystemLog{},
	); err != nil {
		return err
	}
	return EnsureProcedures(DB)
}

// createUserProfileAndRoleSQL inserts the profile row and the role-detail row
// in one statement-level transaction and returns the role-detail primary key.
// Coaches get a coaches row with the given fee; every other role gets a
// clients row.
const createUserProfileAndRoleSQL = `
CREATE OR REPLACE FUNCTION create_user_profile_and_role(
	new_user_id uuid,
	new_user_role text,
	new_full_name text,
	new_phone text,
	new_email text,
	coach_fixed_fee numeric
) RETURNS bigint AS $$
DECLARE
	role_id bigint;
BEGIN
	INSERT INTO profiles (id, role, full_name, phone, email, created_at, updated_at)
	VALUES (new_user_id, new_user_role, new_full_name, new_phone, new_email, now(), now());

	IF new_user_role = 'coach' THEN
		INSERT INTO coaches (user_id, fixed_fee, created_at, updated_at)
		VALUES (new_user_id, COALESCE(coach_fixed_fee, 0), now(), now())
		RETURNING id INTO role_id;
	ELSE
		INSERT INTO clients (user_id, created_at, updated_at)
		VALUES (new_user_id, now(), now())
		RETURNING id INTO role_id;
	END IF;

	RETURN role_id;
END;
$$ LANGUAGE plpgsql;
`

func EnsureProcedures(db *gorm.DB) error {
	if err := db.Exec(createUserProfileAndRoleSQL).Error; err != nil {
		return fmt.Errorf("failed to install create_user_profile_and_role: %w", err)
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
