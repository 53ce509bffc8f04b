package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService loads demo parties and postings for non-production environments.
type SeedService interface {
	SeedBusinesses(ctx context.Context, token string, items []models.Business) (int, error)
	SeedStudents(ctx context.Context, token string, items []models.Student) (int, error)
}

type seedService struct {
	businesses repository.BusinessRepository
	students   repository.StudentRepository
	enabled    bool
	token      string
	logger     zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(businesses repository.BusinessRepository, students repository.StudentRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		businesses: businesses,
		students:   students,
		enabled:    enabled,
		token:      token,
		logger:     logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedBusinesses(ctx context.Context, token string, items []models.Business) (int, error) {
	if err := s.authorize(token); err != nil {
		return 0, err
	}

	created := 0
	for i := range items {
		if items[i].ApprovalStatus == "" {
			items[i].ApprovalStatus = models.ApprovalPending
		}
		if err := s.businesses.Create(ctx, &items[i]); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info().Int("created", created).Msg("businesses seeded")

	return created, nil
}

func (s *seedService) SeedStudents(ctx context.Context, token string, items []models.Student) (int, error) {
	if err := s.authorize(token); err != nil {
		return 0, err
	}

	created := 0
	for i := range items {
		if err := s.students.Create(ctx, &items[i]); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info().Int("created", created).Msg("students seeded")

	return created, nil
}

func (s *seedService) authorize(token string) error {
	if !s.enabled {
		return ErrSeedDisabled
	}
	if s.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return ErrSeedUnauthorized
	}

	return nil
}
