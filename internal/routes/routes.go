package routes

import (
	"time"

	"github.com/basriibrahim1/h2padel-backend/internal/config"
	"github.com/basriibrahim1/h2padel-backend/internal/handlers"
	"github.com/basriibrahim1/h2padel-backend/internal/middleware"
	"github.com/basriibrahim1/h2padel-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	bookingHandler *handlers.BookingHandler,
	courtHandler *handlers.CourtHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Bare root resolves to the caller's role dashboard.
	app.Get("/", authHandler.Home)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Admin panel: staff roles only.
	admin := api.Group("/admin",
		middleware.JWTProtected(cfg),
		middleware.RoleRequired(db, models.RoleAdmin, models.RoleSuperadmin),
	)

	admin.Get("/bookings", bookingHandler.List)
	admin.Get("/bookings/:id", bookingHandler.Get)
	admin.Post("/bookings", bookingHandler.Create)
	admin.Put("/bookings/:id", bookingHandler.Update)
	admin.Delete("/bookings/:id", bookingHandler.Delete)

	admin.Post("/users", userHandler.Create)
	admin.Put("/users/:id", userHandler.Update)

	admin.Get("/courts", courtHandler.List)
	admin.Post("/courts", courtHandler.Create)
	admin.Put("/courts/:id", courtHandler.Update)

	admin.Get("/options", courtHandler.Options)
}
