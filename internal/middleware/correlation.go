package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CorrelationHeader carries the request identifier in both directions.
const CorrelationHeader = "X-Correlation-ID"

const (
	correlationLocal     = "correlation_id"
	maxCorrelationLength = 128
)

type correlationIDKey struct{}

// CorrelationID reuses a caller-supplied X-Correlation-ID (or X-Request-ID) or
// mints a UUID, echoes it on the response and binds it to the request context.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := sanitizeCorrelation(c.Get(CorrelationHeader))
		if id == "" {
			id = sanitizeCorrelation(c.Get(fiber.HeaderXRequestID))
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(correlationLocal, id)
		c.Set(CorrelationHeader, id)
		c.SetUserContext(context.WithValue(c.UserContext(), correlationIDKey{}, id))

		return c.Next()
	}
}

// CorrelationIDFromContext extracts the correlation identifier from ctx, if present.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// GetCorrelationID returns the correlation identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(correlationLocal).(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}

func sanitizeCorrelation(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > maxCorrelationLength {
		return ""
	}
	return value
}
