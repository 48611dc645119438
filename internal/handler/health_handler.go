package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/qr-attendance-api/internal/config"
	"github.com/noah-isme/qr-attendance-api/internal/utils"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Store       string    `json:"store"`
	Cache       string    `json:"cache"`
	Timestamp   time.Time `json:"timestamp"`
}

// HealthCheck returns a handler that reports application and dependency health.
// cache may be nil when no Redis is configured.
func HealthCheck(cfg config.Config, store Pinger, cache *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		payload := HealthResponse{
			Status:      "ok",
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Store:       "up",
			Cache:       "disabled",
			Timestamp:   time.Now().UTC(),
		}

		if cache != nil {
			payload.Cache = "up"
			if err := cache.Ping(ctx).Err(); err != nil {
				payload.Cache = "down"
			}
		}

		if store != nil {
			if err := store.Ping(ctx); err != nil {
				payload.Status = "degraded"
				payload.Store = "down"
				return c.Status(fiber.StatusServiceUnavailable).JSON(utils.APIResponse{
					Success: false,
					Data:    payload,
					Message: "store unreachable",
				})
			}
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
