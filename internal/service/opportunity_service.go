package service

import (
	"context"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

// BadgeReader resolves the derived reputation tier for a business. It is
// implemented by the rating service; the catalog only reads it.
type BadgeReader interface {
	BadgeFor(ctx context.Context, businessID uint) (models.BadgeStatus, error)
}

// OpportunityService exposes catalog use cases.
type OpportunityService interface {
	Create(ctx context.Context, principalID string, payload dto.OpportunityCreateRequest) (dto.OpportunityResponse, error)
	Update(ctx context.Context, principalID string, id uint, payload dto.OpportunityUpdateRequest) (dto.OpportunityResponse, error)
	// Close flips the posting to closed. Idempotent: closing a closed posting
	// succeeds without effect. Closed postings never reopen.
	Close(ctx context.Context, principalID string, id uint) error
	// ListPublic is the student-facing catalog: active postings of approved
	// businesses, each carrying the owner's badge.
	ListPublic(ctx context.Context, req dto.OpportunityListRequest) (dto.OpportunityListResponse, error)
	ListOwned(ctx context.Context, principalID string) ([]dto.OpportunityResponse, error)
}

type opportunityService struct {
	repo       repository.OpportunityRepository
	businesses repository.BusinessRepository
	badges     BadgeReader
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

// NewOpportunityService builds a new opportunity service.
func NewOpportunityService(repo repository.OpportunityRepository, businesses repository.BusinessRepository, badges BadgeReader, validate *validator.Validate, logger zerolog.Logger) OpportunityService {
	return &opportunityService{
		repo:       repo,
		businesses: businesses,
		badges:     badges,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "opportunity_service").Logger(),
	}
}

func (s *opportunityService) Create(ctx context.Context, principalID string, payload dto.OpportunityCreateRequest) (dto.OpportunityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.OpportunityResponse{}, err
	}

	business, err := s.businesses.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OpportunityResponse{}, ErrBusinessNotFound
		}

		return dto.OpportunityResponse{}, err
	}

	status := payload.Status
	if status == "" {
		status = models.OpportunityStatusDraft
	}

	opportunity := models.Opportunity{
		BusinessID:   business.ID,
		BusinessName: business.CompanyName,
		Title:        payload.Title,
		Description:  s.sanitizer.Sanitize(payload.Description),
		Tags:         payload.Tags,
		Questions:    toQuestions(payload.Questions),
		Status:       status,
	}

	if err := s.repo.Create(ctx, &opportunity); err != nil {
		return dto.OpportunityResponse{}, err
	}

	s.logger.Info().Uint("opportunity_id", opportunity.ID).Uint("business_id", business.ID).Msg("opportunity created")

	return dto.NewOpportunityResponse(opportunity), nil
}

func (s *opportunityService) Update(ctx context.Context, principalID string, id uint, payload dto.OpportunityUpdateRequest) (dto.OpportunityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.OpportunityResponse{}, err
	}

	opportunity, err := s.ownedOpportunity(ctx, principalID, id)
	if err != nil {
		return dto.OpportunityResponse{}, err
	}

	if opportunity.Status == models.OpportunityStatusClosed && payload.Status != nil {
		return dto.OpportunityResponse{}, NewStateError("opportunity", models.OpportunityStatusClosed, *payload.Status)
	}

	if payload.Title != nil {
		opportunity.Title = *payload.Title
	}
	if payload.Description != nil {
		opportunity.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.Tags != nil {
		opportunity.Tags = *payload.Tags
	}
	if payload.Questions != nil {
		opportunity.Questions = toQuestions(*payload.Questions)
	}
	if payload.Status != nil {
		opportunity.Status = *payload.Status
	}

	if err := s.repo.Update(ctx, &opportunity); err != nil {
		return dto.OpportunityResponse{}, err
	}

	s.logger.Info().Uint("opportunity_id", opportunity.ID).Msg("opportunity updated")

	return dto.NewOpportunityResponse(opportunity), nil
}

func (s *opportunityService) Close(ctx context.Context, principalID string, id uint) error {
	if _, err := s.ownedOpportunity(ctx, principalID, id); err != nil {
		return err
	}

	if err := s.repo.Close(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOpportunityNotFound
		}

		return err
	}

	s.logger.Info().Uint("opportunity_id", id).Msg("opportunity closed")

	return nil
}

func (s *opportunityService) ListPublic(ctx context.Context, req dto.OpportunityListRequest) (dto.OpportunityListResponse, error) {
	filter := repository.OpportunityFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	opportunities, total, err := s.repo.ListPublic(ctx, filter)
	if err != nil {
		return dto.OpportunityListResponse{}, err
	}

	items := dto.NewOpportunityResponseSlice(opportunities)
	for i := range items {
		badge, err := s.badges.BadgeFor(ctx, items[i].BusinessID)
		if err != nil {
			s.logger.Warn().Err(err).Uint("business_id", items[i].BusinessID).Msg("failed to resolve badge for listing")
			continue
		}
		items[i].Badge = &badge
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.OpportunityListResponse{Items: items, Pagination: pagination}, nil
}

func (s *opportunityService) ListOwned(ctx context.Context, principalID string) ([]dto.OpportunityResponse, error) {
	business, err := s.businesses.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}

		return nil, err
	}

	opportunities, err := s.repo.ListByBusiness(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewOpportunityResponseSlice(opportunities), nil
}

func (s *opportunityService) ownedOpportunity(ctx context.Context, principalID string, id uint) (models.Opportunity, error) {
	business, err := s.businesses.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Opportunity{}, ErrBusinessNotFound
		}

		return models.Opportunity{}, err
	}

	opportunity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Opportunity{}, ErrOpportunityNotFound
		}

		return models.Opportunity{}, err
	}

	if opportunity.BusinessID != business.ID {
		return models.Opportunity{}, ErrOpportunityNotFound
	}

	return opportunity, nil
}

func toQuestions(payloads []dto.QuestionPayload) []models.CustomQuestion {
	questions := make([]models.CustomQuestion, 0, len(payloads))
	for _, q := range payloads {
		questions = append(questions, models.CustomQuestion{Prompt: q.Prompt, Required: q.Required})
	}

	return questions
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
