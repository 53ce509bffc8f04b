package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

// AdminHandler exposes the business approval queue to administrators.
type AdminHandler struct {
	approvals service.ApprovalService
	logger    zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(approvals service.ApprovalService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		approvals: approvals,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches admin endpoints to the admin router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/businesses", h.listBusinesses)
	router.Post("/businesses/:id/approve", h.approve)
	router.Post("/businesses/:id/reject", h.reject)
}

func (h *AdminHandler) listBusinesses(c *fiber.Ctx) error {
	var req dto.AdminBusinessListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	list, err := h.approvals.List(c.Context(), req)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "businesses retrieved", list)
}

func (h *AdminHandler) approve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	business, err := h.approvals.Approve(c.Context(), id)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "business approved", business)
}

func (h *AdminHandler) reject(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	business, err := h.approvals.Reject(c.Context(), id)
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "business rejected", business)
}
