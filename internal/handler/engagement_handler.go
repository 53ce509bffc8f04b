package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

// EngagementHandler exposes the engagement views: who is working with whom.
type EngagementHandler struct {
	service service.EngagementService
	logger  zerolog.Logger
}

// NewEngagementHandler constructs the handler.
func NewEngagementHandler(svc service.EngagementService, logger zerolog.Logger) *EngagementHandler {
	return &EngagementHandler{
		service: svc,
		logger:  logger.With().Str("component", "engagement_handler").Logger(),
	}
}

// Register attaches engagement endpoints to the authenticated router group.
func (h *EngagementHandler) Register(router fiber.Router) {
	router.Get("/students", h.listStudents)
	router.Get("/businesses", h.listBusinesses)
}

func (h *EngagementHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.service.ListAssignedStudents(c.Context(), principalFromContext(c))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assigned students retrieved", students)
}

func (h *EngagementHandler) listBusinesses(c *fiber.Ctx) error {
	businesses, err := h.service.ListAssignedBusinesses(c.Context(), principalFromContext(c))
	if err != nil {
		return respondDomainError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assigned businesses retrieved", businesses)
}
