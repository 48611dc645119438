package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/qr-attendance-api/internal/dto"
	"github.com/noah-isme/qr-attendance-api/internal/service"
	"github.com/noah-isme/qr-attendance-api/internal/utils"
)

// AttendanceLogHandler serves the attendance log endpoints.
type AttendanceLogHandler struct {
	service      service.AttendanceLogService
	logger       zerolog.Logger
	createGuards []fiber.Handler
}

// NewAttendanceLogHandler constructs an attendance log handler. createGuards run
// before a log is recorded, typically a rate limiter.
func NewAttendanceLogHandler(service service.AttendanceLogService, logger zerolog.Logger, createGuards ...fiber.Handler) *AttendanceLogHandler {
	return &AttendanceLogHandler{
		service:      service,
		logger:       logger.With().Str("component", "attendance_log_handler").Logger(),
		createGuards: createGuards,
	}
}

// Register wires attendance log routes.
func (h *AttendanceLogHandler) Register(router fiber.Router) {
	create := append(append([]fiber.Handler{}, h.createGuards...), h.create)

	router.Get("/logs", h.listActive)
	router.Post("/logs", create...)
	router.Delete("/logs/:id", h.delete)
	router.Delete("/clear", h.clear)
	router.Get("/archive", h.listArchived)
}

func (h *AttendanceLogHandler) listActive(c *fiber.Ctx) error {
	logs, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to list attendance logs")
	}
	return utils.SendSuccess(c, "", logs)
}

func (h *AttendanceLogHandler) listArchived(c *fiber.Ctx) error {
	logs, err := h.service.ListArchived(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to list archived logs")
	}
	return utils.SendSuccess(c, "", logs)
}

func (h *AttendanceLogHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateAttendanceLogRequest
	if err := decodeBody(c, &payload); err != nil {
		return respondError(c, h.logger, err, "rejected attendance log body")
	}

	log, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to record attendance")
	}
	return utils.SendCreated(c, "", log)
}

func (h *AttendanceLogHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, err, "failed to delete attendance log")
	}
	return utils.SendSuccess(c, "Attendance log deleted", nil)
}

func (h *AttendanceLogHandler) clear(c *fiber.Ctx) error {
	removed, err := h.service.Clear(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to clear attendance logs")
	}
	requestLogger(h.logger, c).Info().Int64("logs_removed", removed).Msg("attendance logs cleared")
	return utils.SendSuccess(c, "All attendance logs cleared successfully", nil)
}
