package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

// StudentHandler wires student profile HTTP routes.
type StudentHandler struct {
	service service.StudentService
	ratings service.RatingService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(svc service.StudentService, ratings service.RatingService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: svc,
		ratings: ratings,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student endpoints to the authenticated router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Post("", h.register)
	router.Get("/me", h.getOwn)
	router.Patch("/me", h.update)
	router.Patch("/me/matching", h.setMatching)
	router.Get("/:id/rating", h.averageRating)
}

func (h *StudentHandler) register(c *fiber.Ctx) error {
	principal := principalFromContext(c)
	if principal == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	var payload dto.StudentRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.Register(c.Context(), principal, payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student registered", student)
}

func (h *StudentHandler) getOwn(c *fiber.Ctx) error {
	student, err := h.service.GetOwn(c.Context(), principalFromContext(c))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.Update(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "student updated", student)
}

func (h *StudentHandler) setMatching(c *fiber.Ctx) error {
	var payload dto.MatchingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.SetOpenToMatching(c.Context(), principalFromContext(c), payload.Open)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "matching preference updated", student)
}

func (h *StudentHandler) averageRating(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	average, err := h.ratings.AverageForStudent(c.Context(), id)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "average rating retrieved", average)
}
