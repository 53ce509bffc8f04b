package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/middleware"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
	"github.com/talentbridge/talentbridge-go-api/internal/utils"
)

func principalFromContext(c *fiber.Ctx) string {
	if v := c.Locals("principal_id"); v != nil {
		if id, ok := v.(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

// respondDomainError maps the engine's error taxonomy onto HTTP statuses:
// validation failures are 400, lifecycle violations 409, missing references
// 404, everything else a logged 500.
func respondDomainError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	var stateErr *service.StateError

	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, service.ErrValidation):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateApplication):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &stateErr):
		return utils.SendError(c, fiber.StatusConflict, stateErr.Error())
	case errors.Is(err, service.ErrBusinessNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrOpportunityNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrRatingNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
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
