package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

// StudentService exposes student profile use cases.
type StudentService interface {
	Register(ctx context.Context, principalID string, payload dto.StudentRegisterRequest) (dto.StudentResponse, error)
	GetOwn(ctx context.Context, principalID string) (dto.StudentResponse, error)
	Update(ctx context.Context, principalID string, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	SetOpenToMatching(ctx context.Context, principalID string, open bool) (dto.StudentResponse, error)
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewStudentService builds a new student service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Register(ctx context.Context, principalID string, payload dto.StudentRegisterRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		PrincipalID:  principalID,
		Name:         payload.Name,
		Email:        payload.Email,
		Skills:       payload.Skills,
		DesiredRoles: payload.DesiredRoles,
		Bio:          s.sanitizer.Sanitize(payload.Bio),
		PortfolioURL: payload.PortfolioURL,
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student registered")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) GetOwn(ctx context.Context, principalID string) (dto.StudentResponse, error) {
	student, err := s.repo.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}

		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, principalID string, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}

		return dto.StudentResponse{}, err
	}

	if payload.Name != nil {
		student.Name = *payload.Name
	}
	if payload.Skills != nil {
		student.Skills = *payload.Skills
	}
	if payload.DesiredRoles != nil {
		student.DesiredRoles = *payload.DesiredRoles
	}
	if payload.Bio != nil {
		student.Bio = s.sanitizer.Sanitize(*payload.Bio)
	}
	if payload.PortfolioURL != nil {
		student.PortfolioURL = *payload.PortfolioURL
	}

	if err := s.repo.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student profile updated")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) SetOpenToMatching(ctx context.Context, principalID string, open bool) (dto.StudentResponse, error) {
	student, err := s.repo.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}

		return dto.StudentResponse{}, err
	}

	if err := s.repo.SetOpenToMatching(ctx, student.ID, open); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}

		return dto.StudentResponse{}, err
	}

	student.OpenToMatching = open

	return dto.NewStudentResponse(student), nil
}
