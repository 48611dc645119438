package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/qr-attendance-api/internal/dto"
	"github.com/noah-isme/qr-attendance-api/internal/service"
	"github.com/noah-isme/qr-attendance-api/internal/utils"
)

// UserHandler serves the user registry endpoints.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires user routes.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/users", h.list)
	router.Post("/users", h.register)
	router.Delete("/users/:studentId", h.delete)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to list users")
	}
	return utils.SendSuccess(c, "", users)
}

func (h *UserHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterUserRequest
	if err := decodeBody(c, &payload); err != nil {
		return respondError(c, h.logger, err, "rejected registration body")
	}

	user, err := h.service.Register(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to register user")
	}
	return utils.SendCreated(c, "", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("studentId")); err != nil {
		return respondError(c, h.logger, err, "failed to delete user")
	}
	return utils.SendSuccess(c, "User and associated attendance logs deleted", nil)
}
