package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

// EngagementService is the engagement view: a pure read projection of which
// parties are currently engaged, derived entirely from accepted applications.
// It performs no writes; the projection changes only through application
// lifecycle transitions.
type EngagementService interface {
	// ListAssignedStudents returns each student with at least one accepted
	// application against the calling business, deduplicated by student id.
	ListAssignedStudents(ctx context.Context, principalID string) ([]dto.StudentResponse, error)
	// ListAssignedBusinesses returns public facets of each business the
	// calling student has an accepted application with.
	ListAssignedBusinesses(ctx context.Context, principalID string) ([]dto.BusinessPublicResponse, error)
}

type engagementService struct {
	applications repository.ApplicationRepository
	students     repository.StudentRepository
	businesses   repository.BusinessRepository
	logger       zerolog.Logger
}

// NewEngagementService builds the engagement view.
func NewEngagementService(applications repository.ApplicationRepository, students repository.StudentRepository, businesses repository.BusinessRepository, logger zerolog.Logger) EngagementService {
	return &engagementService{
		applications: applications,
		students:     students,
		businesses:   businesses,
		logger:       logger.With().Str("component", "engagement_service").Logger(),
	}
}

func (s *engagementService) ListAssignedStudents(ctx context.Context, principalID string) ([]dto.StudentResponse, error) {
	business, err := s.businesses.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}

		return nil, err
	}

	ids, err := s.applications.AcceptedStudentIDs(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	students, err := s.students.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *engagementService) ListAssignedBusinesses(ctx context.Context, principalID string) ([]dto.BusinessPublicResponse, error) {
	student, err := s.students.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}

		return nil, err
	}

	ids, err := s.applications.AcceptedBusinessIDs(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	businesses, err := s.businesses.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return dto.NewBusinessPublicResponseSlice(businesses), nil
}
