package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/qr-attendance-api/internal/config"
	"github.com/noah-isme/qr-attendance-api/internal/handler"
	"github.com/noah-isme/qr-attendance-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler          *handler.UserHandler
	AttendanceLogHandler *handler.AttendanceLogHandler
	Store                handler.Pinger
	Cache                *redis.Client
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/healthz", handler.HealthCheck(cfg, deps.Store, deps.Cache))
	app.Get("/metrics", observability.MetricsHandler())

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api/attendance"
	}
	api := app.Group(prefix, func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api)
	}
	if deps.AttendanceLogHandler != nil {
		deps.AttendanceLogHandler.Register(api)
	}
}
