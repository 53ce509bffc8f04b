package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

// BusinessHandler wires business profile HTTP routes.
type BusinessHandler struct {
	service  service.BusinessService
	approval service.ApprovalService
	badges   service.BadgeReader
	logger   zerolog.Logger
}

// NewBusinessHandler constructs the handler.
func NewBusinessHandler(svc service.BusinessService, approval service.ApprovalService, badges service.BadgeReader, logger zerolog.Logger) *BusinessHandler {
	return &BusinessHandler{
		service:  svc,
		approval: approval,
		badges:   badges,
		logger:   logger.With().Str("component", "business_handler").Logger(),
	}
}

// Register attaches business endpoints to the authenticated router group.
func (h *BusinessHandler) Register(router fiber.Router) {
	router.Post("", h.register)
	router.Get("/me", h.getOwn)
	router.Patch("/me", h.update)
	router.Get("/me/approval", h.approvalStatus)
	router.Get("/:id", h.getPublic)
	router.Get("/:id/badge", h.badge)
}

func (h *BusinessHandler) register(c *fiber.Ctx) error {
	principal := principalFromContext(c)
	if principal == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	var payload dto.BusinessRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	business, err := h.service.Register(c.Context(), principal, payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "business registered", business)
}

func (h *BusinessHandler) getOwn(c *fiber.Ctx) error {
	business, err := h.service.GetOwn(c.Context(), principalFromContext(c))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "business retrieved", business)
}

func (h *BusinessHandler) update(c *fiber.Ctx) error {
	var payload dto.BusinessUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	business, err := h.service.Update(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "business updated", business)
}

func (h *BusinessHandler) approvalStatus(c *fiber.Ctx) error {
	status, err := h.approval.StatusForPrincipal(c.Context(), principalFromContext(c))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "approval status retrieved", status)
}

func (h *BusinessHandler) getPublic(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	business, err := h.service.GetPublic(c.Context(), id)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "business retrieved", business)
}

func (h *BusinessHandler) badge(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	badge, err := h.badges.BadgeFor(c.Context(), id)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "badge retrieved", badge)
}
