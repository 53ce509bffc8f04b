package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/observability"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

// RatingService owns post-engagement feedback and the derived badge tier.
type RatingService interface {
	// Submit creates the single rating for a completed application and moves
	// the application to rated. It fails with a StateError when the
	// application is in any other status.
	Submit(ctx context.Context, principalID string, applicationID uint, payload dto.RatingSubmitRequest) (dto.RatingResponse, error)
	BadgeFor(ctx context.Context, businessID uint) (models.BadgeStatus, error)
	AverageForStudent(ctx context.Context, studentID uint) (dto.AverageRatingResponse, error)
}

type ratingService struct {
	repo         repository.RatingRepository
	applications repository.ApplicationRepository
	businesses   repository.BusinessRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	events       EventPublisher
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewRatingService builds the rating and badge aggregator.
func NewRatingService(
	repo repository.RatingRepository,
	applications repository.ApplicationRepository,
	businesses repository.BusinessRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) RatingService {
	return &ratingService{
		repo:         repo,
		applications: applications,
		businesses:   businesses,
		cache:        cache,
		cacheTTL:     cacheTTL,
		events:       events,
		validator:    validate,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "rating_service").Logger(),
		now:          time.Now,
	}
}

func (s *ratingService) Submit(ctx context.Context, principalID string, applicationID uint, payload dto.RatingSubmitRequest) (dto.RatingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RatingResponse{}, err
	}

	business, err := s.businesses.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RatingResponse{}, ErrBusinessNotFound
		}

		return dto.RatingResponse{}, err
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RatingResponse{}, ErrApplicationNotFound
		}

		return dto.RatingResponse{}, err
	}

	if application.BusinessID != business.ID {
		return dto.RatingResponse{}, ErrApplicationNotFound
	}

	if application.Status != models.ApplicationStatusCompleted {
		return dto.RatingResponse{}, NewStateError("application", application.Status, models.ApplicationStatusRated)
	}

	rating := models.Rating{
		ApplicationID:      application.ID,
		StudentID:          application.StudentID,
		BusinessID:         application.BusinessID,
		OverallRating:      payload.OverallRating,
		Communication:      payload.Communication,
		Professionalism:    payload.Professionalism,
		Quality:            payload.Quality,
		Feedback:           s.sanitizer.Sanitize(payload.Feedback),
		ProjectCompletedAt: s.now(),
	}

	// The unique index on application_id is the real duplicate guard; a race
	// between two submitters resolves to exactly one stored rating.
	if err := s.repo.Create(ctx, &rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.RatingResponse{}, NewStateError("application", models.ApplicationStatusRated, models.ApplicationStatusRated)
		}

		return dto.RatingResponse{}, err
	}

	moved, err := s.applications.TransitionStatus(ctx, application.ID, models.ApplicationStatusCompleted, models.ApplicationStatusRated, nil)
	if err != nil {
		return dto.RatingResponse{}, err
	}
	if !moved {
		s.logger.Warn().Uint("application_id", application.ID).Msg("application left completed before rating transition")
	}

	s.invalidateBadge(ctx, application.BusinessID)

	observability.ApplicationTransitions().WithLabelValues(models.ApplicationStatusRated).Inc()
	s.events.Publish(ctx, LifecycleEvent{
		Kind:          EventApplicationRated,
		BusinessID:    application.BusinessID,
		StudentID:     application.StudentID,
		ApplicationID: application.ID,
		Status:        models.ApplicationStatusRated,
	})

	s.logger.Info().Uint("application_id", application.ID).Uint("rating_id", rating.ID).Msg("rating submitted")

	return dto.NewRatingResponse(rating), nil
}

func (s *ratingService) BadgeFor(ctx context.Context, businessID uint) (models.BadgeStatus, error) {
	cacheKey := badgeCacheKey(businessID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var badge models.BadgeStatus
			if unmarshalErr := json.Unmarshal([]byte(cached), &badge); unmarshalErr == nil {
				return badge, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read badge cache")
		}
	}

	completed, err := s.applications.CountCompletedByBusiness(ctx, businessID)
	if err != nil {
		return models.BadgeStatus{}, err
	}

	badge := models.BadgeStatus{
		Badge:             models.BadgeForCount(completed),
		CompletedProjects: completed,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(badge); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store badge cache")
			}
		}
	}

	return badge, nil
}

func (s *ratingService) AverageForStudent(ctx context.Context, studentID uint) (dto.AverageRatingResponse, error) {
	ratings, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.AverageRatingResponse{}, err
	}

	response := dto.AverageRatingResponse{StudentID: studentID, Count: len(ratings)}
	if len(ratings) == 0 {
		// No ratings means the average is undefined, not zero.
		return response, nil
	}

	var sum int
	for _, rating := range ratings {
		sum += rating.OverallRating
	}

	response.Average = float64(sum) / float64(len(ratings))
	response.HasRatings = true

	return response, nil
}

func (s *ratingService) invalidateBadge(ctx context.Context, businessID uint) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, badgeCacheKey(businessID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("business_id", businessID).Msg("failed to invalidate badge cache")
	}
}

func badgeCacheKey(businessID uint) string {
	return fmt.Sprintf("badge:business:%d", businessID)
}
