package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

// OpportunityHandler wires opportunity posting and discovery routes.
type OpportunityHandler struct {
	service service.OpportunityService
	logger  zerolog.Logger
}

// NewOpportunityHandler constructs the handler.
func NewOpportunityHandler(svc service.OpportunityService, logger zerolog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		service: svc,
		logger:  logger.With().Str("component", "opportunity_handler").Logger(),
	}
}

// Register attaches opportunity endpoints to the authenticated router group.
func (h *OpportunityHandler) Register(router fiber.Router) {
	router.Get("", h.listPublic)
	router.Post("", h.create)
	router.Get("/mine", h.listOwned)
	router.Patch("/:id", h.update)
	router.Post("/:id/close", h.close)
}

func (h *OpportunityHandler) listPublic(c *fiber.Ctx) error {
	var req dto.OpportunityListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	list, err := h.service.ListPublic(c.Context(), req)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "opportunities retrieved", list)
}

func (h *OpportunityHandler) create(c *fiber.Ctx) error {
	var payload dto.OpportunityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	opportunity, err := h.service.Create(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "opportunity created", opportunity)
}

func (h *OpportunityHandler) listOwned(c *fiber.Ctx) error {
	opportunities, err := h.service.ListOwned(c.Context(), principalFromContext(c))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "opportunities retrieved", opportunities)
}

func (h *OpportunityHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.OpportunityUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	opportunity, err := h.service.Update(c.Context(), principalFromContext(c), id, payload)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "opportunity updated", opportunity)
}

func (h *OpportunityHandler) close(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Close(c.Context(), principalFromContext(c), id); err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "opportunity closed", nil)
}
