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

// BusinessService exposes business profile use cases.
type BusinessService interface {
	Register(ctx context.Context, principalID string, payload dto.BusinessRegisterRequest) (dto.BusinessResponse, error)
	GetOwn(ctx context.Context, principalID string) (dto.BusinessResponse, error)
	Update(ctx context.Context, principalID string, payload dto.BusinessUpdateRequest) (dto.BusinessResponse, error)
	// GetPublic returns the public facet. Businesses that are not approved are
	// reported as not found: an unapproved facet is never rendered to other
	// parties.
	GetPublic(ctx context.Context, id uint) (dto.BusinessPublicResponse, error)
}

type businessService struct {
	repo      repository.BusinessRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewBusinessService builds a new business service.
func NewBusinessService(repo repository.BusinessRepository, validate *validator.Validate, logger zerolog.Logger) BusinessService {
	return &businessService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "business_service").Logger(),
	}
}

func (s *businessService) Register(ctx context.Context, principalID string, payload dto.BusinessRegisterRequest) (dto.BusinessResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BusinessResponse{}, err
	}

	business := models.Business{
		PrincipalID:    principalID,
		CompanyName:    payload.CompanyName,
		Location:       payload.Location,
		Industry:       payload.Industry,
		ContactName:    payload.ContactName,
		ContactEmail:   payload.ContactEmail,
		ContactChannel: payload.ContactChannel,
		Needs:          s.sanitizer.Sanitize(payload.Needs),
		Tags:           payload.Tags,
		Phone:          payload.Phone,
		ApprovalStatus: models.ApprovalPending,
	}

	if err := s.repo.Create(ctx, &business); err != nil {
		return dto.BusinessResponse{}, err
	}

	s.logger.Info().Uint("business_id", business.ID).Msg("business registered, approval pending")

	return dto.NewBusinessResponse(business), nil
}

func (s *businessService) GetOwn(ctx context.Context, principalID string) (dto.BusinessResponse, error) {
	business, err := s.repo.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BusinessResponse{}, ErrBusinessNotFound
		}

		return dto.BusinessResponse{}, err
	}

	return dto.NewBusinessResponse(business), nil
}

func (s *businessService) Update(ctx context.Context, principalID string, payload dto.BusinessUpdateRequest) (dto.BusinessResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BusinessResponse{}, err
	}

	business, err := s.repo.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BusinessResponse{}, ErrBusinessNotFound
		}

		return dto.BusinessResponse{}, err
	}

	if payload.CompanyName != nil {
		business.CompanyName = *payload.CompanyName
	}
	if payload.Location != nil {
		business.Location = *payload.Location
	}
	if payload.Industry != nil {
		business.Industry = *payload.Industry
	}
	if payload.ContactName != nil {
		business.ContactName = *payload.ContactName
	}
	if payload.ContactChannel != nil {
		business.ContactChannel = *payload.ContactChannel
	}
	if payload.Needs != nil {
		business.Needs = s.sanitizer.Sanitize(*payload.Needs)
	}
	if payload.Tags != nil {
		business.Tags = *payload.Tags
	}
	if payload.Phone != nil {
		business.Phone = *payload.Phone
	}

	if err := s.repo.Update(ctx, &business); err != nil {
		return dto.BusinessResponse{}, err
	}

	s.logger.Info().Uint("business_id", business.ID).Msg("business profile updated")

	return dto.NewBusinessResponse(business), nil
}

func (s *businessService) GetPublic(ctx context.Context, id uint) (dto.BusinessPublicResponse, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BusinessPublicResponse{}, ErrBusinessNotFound
		}

		return dto.BusinessPublicResponse{}, err
	}

	if !business.IsApproved() {
		return dto.BusinessPublicResponse{}, ErrBusinessNotFound
	}

	return dto.NewBusinessPublicResponse(business), nil
}
