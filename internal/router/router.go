package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentbridge/talentbridge-go-api/internal/config"
	"github.com/talentbridge/talentbridge-go-api/internal/handler"
	"github.com/talentbridge/talentbridge-go-api/internal/middleware"
	"github.com/talentbridge/talentbridge-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	BusinessHandler    *handler.BusinessHandler
	StudentHandler     *handler.StudentHandler
	OpportunityHandler *handler.OpportunityHandler
	ApplicationHandler *handler.ApplicationHandler
	EngagementHandler  *handler.EngagementHandler
	AdminHandler       *handler.AdminHandler
	SeedHandler        *handler.SeedHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.BusinessHandler != nil {
		businesses := api.Group("/businesses", jwtMiddleware)
		deps.BusinessHandler.Register(businesses)
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
	}

	if deps.OpportunityHandler != nil {
		opportunities := api.Group("/opportunities", jwtMiddleware)
		deps.OpportunityHandler.Register(opportunities)
	}

	if deps.ApplicationHandler != nil {
		applications := api.Group("/applications", jwtMiddleware)
		deps.ApplicationHandler.Register(applications)
	}

	if deps.EngagementHandler != nil {
		engagements := api.Group("/engagements", jwtMiddleware)
		deps.EngagementHandler.Register(engagements)
	}

	if deps.AdminHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole("admin"))
		deps.AdminHandler.Register(admin)
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed")
		deps.SeedHandler.Register(seed)
	}
}
