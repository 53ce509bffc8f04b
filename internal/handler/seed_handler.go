package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

// SeedHandler exposes demo-data loading for non-production environments.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs the handler.
func NewSeedHandler(svc service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: svc,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register attaches seed endpoints. These sit outside the JWT group and are
// guarded by the seed token instead.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/businesses", h.seedBusinesses)
	router.Post("/students", h.seedStudents)
}

func (h *SeedHandler) seedBusinesses(c *fiber.Ctx) error {
	var items []models.Business
	if err := c.BodyParser(&items); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.SeedBusinesses(c.Context(), c.Get("X-Seed-Token"), items)
	if err != nil {
		return h.respondSeedError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "businesses seeded", fiber.Map{"created": created})
}

func (h *SeedHandler) seedStudents(c *fiber.Ctx) error {
	var items []models.Student
	if err := c.BodyParser(&items); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.SeedStudents(c.Context(), c.Get("X-Seed-Token"), items)
	if err != nil {
		return h.respondSeedError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "students seeded", fiber.Map{"created": created})
}

func (h *SeedHandler) respondSeedError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSeedDisabled):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSeedUnauthorized):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	default:
		h.logger.Error().Err(err).Msg("seeding failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "seeding failed")
	}
}
