package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/config"
	"github.com/talentbridge/talentbridge-go-api/internal/database"
	"github.com/talentbridge/talentbridge-go-api/internal/handler"
	"github.com/talentbridge/talentbridge-go-api/internal/middleware"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
	"github.com/talentbridge/talentbridge-go-api/internal/router"
	"github.com/talentbridge/talentbridge-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Event delivery is best effort: without a broker the publisher logs and
	// drops events instead of blocking the lifecycle.
	var natsConn *nats.Conn
	if cfg.NATSAddr != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSAddr)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats address not configured, lifecycle events disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	businessRepo := repository.NewBusinessRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	events := service.NewNATSEventPublisher(natsConn, cfg.EventSubjectPrefix, logger)
	mail := service.NewLogMailDelivery(logger)

	businessService := service.NewBusinessService(businessRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, validate, logger)
	ratingService := service.NewRatingService(ratingRepo, applicationRepo, businessRepo, redisClient, cfg.BadgeCacheTTL, events, validate, logger)
	opportunityService := service.NewOpportunityService(opportunityRepo, businessRepo, ratingService, validate, logger)
	applicationService := service.NewApplicationService(applicationRepo, opportunityRepo, studentRepo, businessRepo, events, validate, logger)
	engagementService := service.NewEngagementService(applicationRepo, studentRepo, businessRepo, logger)
	approvalService := service.NewApprovalService(businessRepo, mail, events, logger)
	seedService := service.NewSeedService(businessRepo, studentRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	businessHandler := handler.NewBusinessHandler(businessService, approvalService, ratingService, logger)
	studentHandler := handler.NewStudentHandler(studentService, ratingService, logger)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService, logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, ratingService, cfg.SubmitRateLimit, cfg.SubmitRateWindow, logger)
	engagementHandler := handler.NewEngagementHandler(engagementService, logger)
	adminHandler := handler.NewAdminHandler(approvalService, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		BusinessHandler:    businessHandler,
		StudentHandler:     studentHandler,
		OpportunityHandler: opportunityHandler,
		ApplicationHandler: applicationHandler,
		EngagementHandler:  engagementHandler,
		AdminHandler:       adminHandler,
		SeedHandler:        seedHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
