package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values mirror the auth metadata written at provisioning time.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleCoach      = "coach"
	RoleClient     = "client"
)

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperadmin, RoleAdmin, RoleCoach, RoleClient:
		return true
	}
	return false
}

// roleDashboards maps a role to the dashboard path the SPA lands on.
var roleDashboards = map[string]string{
	RoleSuperadmin: "/superadmin/dashboard",
	RoleAdmin:      "/admin/dashboard",
	RoleCoach:      "/coach/dashboard",
	RoleClient:     "/client/dashboard",
}

// DashboardPath returns the dashboard for a role, or /login when the role is
// unknown.
func DashboardPath(role string) string {
	if path, ok := roleDashboards[role]; ok {
		return path
	}
	return "/login"
}

// Profile is the relational mirror of an identity-service account. Its primary
// key is the auth user id, not a locally generated one.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Role      string    `gorm:"size:20;not null;index" json:"role"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
