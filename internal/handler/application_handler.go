package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/middleware"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

// ApplicationHandler wires the application lifecycle routes: students submit,
// businesses move applications through accept, reject, complete and rate.
type ApplicationHandler struct {
	service     service.ApplicationService
	ratings     service.RatingService
	submitLimit int
	submitWin   time.Duration
	logger      zerolog.Logger
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(svc service.ApplicationService, ratings service.RatingService, submitLimit int, submitWindow time.Duration, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service:     svc,
		ratings:     ratings,
		submitLimit: submitLimit,
		submitWin:   submitWindow,
		logger:      logger.With().Str("component", "application_handler").Logger(),
	}
}

// Register attaches application endpoints to the authenticated router group.
func (h *ApplicationHandler) Register(router fiber.Router) {
	router.Post("", middleware.RateLimit("application_submit", h.submitLimit, h.submitWin), h.submit)
	router.Get("/mine", h.listForStudent)
	router.Get("/received", h.listForBusiness)
	router.Post("/:id/accept", h.accept)
	router.Post("/:id/reject", h.reject)
	router.Post("/:id/complete", h.markCompleted)
	router.Post("/:id/rating", h.submitRating)
}

func (h *ApplicationHandler) submit(c *fiber.Ctx) error {
	var payload dto.ApplicationSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	application, err := h.service.Submit(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application submitted", application)
}

func (h *ApplicationHandler) listForStudent(c *fiber.Ctx) error {
	applications, err := h.service.ListForStudent(c.Context(), principalFromContext(c))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *ApplicationHandler) listForBusiness(c *fiber.Ctx) error {
	applications, err := h.service.ListForBusiness(c.Context(), principalFromContext(c), c.Query("status"))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *ApplicationHandler) accept(c *fiber.Ctx) error {
	return h.transition(c, h.service.Accept, "application accepted")
}

func (h *ApplicationHandler) reject(c *fiber.Ctx) error {
	return h.transition(c, h.service.Reject, "application rejected")
}

func (h *ApplicationHandler) markCompleted(c *fiber.Ctx) error {
	return h.transition(c, h.service.MarkCompleted, "application completed")
}

func (h *ApplicationHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, principalID string, id uint) (dto.ApplicationResponse, error), message string) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	application, err := fn(c.Context(), principalFromContext(c), id)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, message, application)
}

func (h *ApplicationHandler) submitRating(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.RatingSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	rating, err := h.ratings.Submit(c.Context(), principalFromContext(c), id, payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "rating submitted", rating)
}
