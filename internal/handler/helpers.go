package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/qr-attendance-api/internal/middleware"
	"github.com/noah-isme/qr-attendance-api/internal/service"
	"github.com/noah-isme/qr-attendance-api/internal/utils"
)

var (
	errMissingBody = &service.Error{Kind: service.ErrValidation, Message: "Request body is missing"}
	errInvalidBody = &service.Error{Kind: service.ErrValidation, Message: "Invalid request body"}
)

// decodeBody decodes a JSON request body with the application's decoder.
// The Content-Type header is not consulted.
func decodeBody(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return errMissingBody
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		return &service.Error{Kind: errInvalidBody.Kind, Message: errInvalidBody.Message, Err: err}
	}
	return nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the failure envelope for err. Errors that do not carry a
// client-facing message are reported generically.
func respondError(c *fiber.Ctx, base zerolog.Logger, err error, msg string) error {
	status := statusForError(err)
	message := "Internal server error"
	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		message = svcErr.Message
	}

	logger := requestLogger(base, c)
	if status >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Msg(msg)
	} else {
		logger.Debug().Err(err).Int("status", status).Msg(msg)
	}

	return utils.SendError(c, status, message)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
