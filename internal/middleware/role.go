package middleware

import (
	"github.com/basriibrahim1/h2padel-backend/internal/dto"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoleRequired allows only the given roles through. The role is read from the
// profile row, not the token, so a role change takes effect without waiting
// for token expiry.
func RoleRequired(db *gorm.DB, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var profile models.Profile
		if err := db.First(&profile, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if _, ok := allowed[profile.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient permissions",
			})
		}

		c.Locals("role", profile.Role)
		return c.Next()
	}
}
