package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/observability"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

// ApplicationService is the lifecycle engine: it owns every status edge an
// application can take from submission to a terminal outcome.
//
// Transition operations are idempotent against retries of the same target
// transition (re-accepting an accepted application is a no-op success) and
// reject cross-transitions with a StateError. Each transition is one
// conditional row update, so a duplicate invocation can never produce a
// corrupted intermediate state.
type ApplicationService interface {
	Submit(ctx context.Context, principalID string, payload dto.ApplicationSubmitRequest) (dto.ApplicationResponse, error)
	Accept(ctx context.Context, principalID string, id uint) (dto.ApplicationResponse, error)
	Reject(ctx context.Context, principalID string, id uint) (dto.ApplicationResponse, error)
	MarkCompleted(ctx context.Context, principalID string, id uint) (dto.ApplicationResponse, error)
	ListForStudent(ctx context.Context, principalID string) ([]dto.ApplicationResponse, error)
	ListForBusiness(ctx context.Context, principalID, status string) ([]dto.ApplicationResponse, error)
}

type applicationService struct {
	repo          repository.ApplicationRepository
	opportunities repository.OpportunityRepository
	students      repository.StudentRepository
	businesses    repository.BusinessRepository
	events        EventPublisher
	validator     *validator.Validate
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
	now           func() time.Time
}

// NewApplicationService builds the lifecycle engine.
func NewApplicationService(
	repo repository.ApplicationRepository,
	opportunities repository.OpportunityRepository,
	students repository.StudentRepository,
	businesses repository.BusinessRepository,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationService{
		repo:          repo,
		opportunities: opportunities,
		students:      students,
		businesses:    businesses,
		events:        events,
		validator:     validate,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        logger.With().Str("component", "application_service").Logger(),
		now:           time.Now,
	}
}

func (s *applicationService) Submit(ctx context.Context, principalID string, payload dto.ApplicationSubmitRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicationResponse{}, err
	}

	student, err := s.students.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrStudentNotFound
		}

		return dto.ApplicationResponse{}, err
	}

	if !student.HasDisplayName() {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: student profile has no display name", ErrValidation)
	}

	application := models.Application{
		StudentID:    student.ID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		Answers:      s.sanitizeAnswers(payload.Answers),
		Status:       models.ApplicationStatusPending,
		AppliedAt:    s.now(),
	}

	var opportunity models.Opportunity
	if payload.OpportunityID != nil {
		opportunity, err = s.resolveOpenOpportunity(ctx, *payload.OpportunityID)
		if err != nil {
			return dto.ApplicationResponse{}, err
		}

		if err := s.checkRequiredAnswers(opportunity, payload.Answers); err != nil {
			return dto.ApplicationResponse{}, err
		}

		exists, err := s.repo.HasActiveForTarget(ctx, student.ID, opportunity.ID)
		if err != nil {
			return dto.ApplicationResponse{}, err
		}
		if exists {
			return dto.ApplicationResponse{}, ErrDuplicateApplication
		}

		application.BusinessID = opportunity.BusinessID
		application.BusinessName = opportunity.BusinessName
		application.OpportunityID = &opportunity.ID
		application.OpportunityTitle = opportunity.Title
	} else {
		// Legacy posting-less path: the application targets the business
		// directly, with no counter and no custom questions.
		business, err := s.resolveApprovedBusiness(ctx, payload.BusinessID)
		if err != nil {
			return dto.ApplicationResponse{}, err
		}

		application.BusinessID = business.ID
		application.BusinessName = business.CompanyName
	}

	if err := s.repo.Create(ctx, &application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ApplicationResponse{}, ErrDuplicateApplication
		}

		return dto.ApplicationResponse{}, err
	}

	if application.OpportunityID != nil {
		if err := s.opportunities.IncrementApplicants(ctx, *application.OpportunityID); err != nil {
			s.logger.Warn().Err(err).Uint("opportunity_id", *application.OpportunityID).Msg("failed to increment applicant counter")
		}
	}

	observability.ApplicationTransitions().WithLabelValues("submit").Inc()
	s.events.Publish(ctx, LifecycleEvent{
		Kind:          EventApplicationSubmitted,
		BusinessID:    application.BusinessID,
		StudentID:     application.StudentID,
		ApplicationID: application.ID,
		Status:        application.Status,
	})

	s.logger.Info().Uint("application_id", application.ID).Uint("student_id", student.ID).Msg("application submitted")

	return dto.NewApplicationResponse(application), nil
}

func (s *applicationService) Accept(ctx context.Context, principalID string, id uint) (dto.ApplicationResponse, error) {
	acceptedAt := s.now()
	return s.transition(ctx, principalID, id, models.ApplicationStatusAccepted, EventApplicationAccepted, &acceptedAt)
}

func (s *applicationService) Reject(ctx context.Context, principalID string, id uint) (dto.ApplicationResponse, error) {
	return s.transition(ctx, principalID, id, models.ApplicationStatusRejected, EventApplicationRejected, nil)
}

func (s *applicationService) MarkCompleted(ctx context.Context, principalID string, id uint) (dto.ApplicationResponse, error) {
	return s.transition(ctx, principalID, id, models.ApplicationStatusCompleted, EventApplicationCompleted, nil)
}

// transition moves an application along a single lifecycle edge on behalf of
// the owning business. Re-requesting the status the application already has
// is a no-op success; any other illegal edge is a StateError.
func (s *applicationService) transition(ctx context.Context, principalID string, id uint, target, eventKind string, acceptedAt *time.Time) (dto.ApplicationResponse, error) {
	application, err := s.ownedApplication(ctx, principalID, id)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	if application.Status == target {
		return dto.NewApplicationResponse(application), nil
	}

	if !application.CanTransition(target) {
		return dto.ApplicationResponse{}, NewStateError("application", application.Status, target)
	}

	moved, err := s.repo.TransitionStatus(ctx, id, application.Status, target, acceptedAt)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	if !moved {
		// Lost a race with a concurrent caller. Re-read: a same-transition
		// retry still succeeds, anything else is a state violation.
		application, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return dto.ApplicationResponse{}, err
		}
		if application.Status != target {
			return dto.ApplicationResponse{}, NewStateError("application", application.Status, target)
		}

		return dto.NewApplicationResponse(application), nil
	}

	application.Status = target
	if acceptedAt != nil {
		application.AcceptedAt = acceptedAt
	}

	observability.ApplicationTransitions().WithLabelValues(target).Inc()
	s.events.Publish(ctx, LifecycleEvent{
		Kind:          eventKind,
		BusinessID:    application.BusinessID,
		StudentID:     application.StudentID,
		ApplicationID: application.ID,
		Status:        target,
	})

	s.logger.Info().Uint("application_id", id).Str("status", target).Msg("application transitioned")

	return dto.NewApplicationResponse(application), nil
}

func (s *applicationService) ListForStudent(ctx context.Context, principalID string) ([]dto.ApplicationResponse, error) {
	student, err := s.students.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}

		return nil, err
	}

	applications, err := s.repo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewApplicationResponseSlice(applications), nil
}

func (s *applicationService) ListForBusiness(ctx context.Context, principalID, status string) ([]dto.ApplicationResponse, error) {
	business, err := s.businesses.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}

		return nil, err
	}

	applications, err := s.repo.ListByBusiness(ctx, business.ID, status)
	if err != nil {
		return nil, err
	}

	return dto.NewApplicationResponseSlice(applications), nil
}

func (s *applicationService) ownedApplication(ctx context.Context, principalID string, id uint) (models.Application, error) {
	business, err := s.businesses.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Application{}, ErrBusinessNotFound
		}

		return models.Application{}, err
	}

	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Application{}, ErrApplicationNotFound
		}

		return models.Application{}, err
	}

	if application.BusinessID != business.ID {
		return models.Application{}, ErrApplicationNotFound
	}

	return application, nil
}

func (s *applicationService) resolveOpenOpportunity(ctx context.Context, id uint) (models.Opportunity, error) {
	opportunity, err := s.opportunities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Opportunity{}, ErrOpportunityNotFound
		}

		return models.Opportunity{}, err
	}

	if !opportunity.IsOpen() {
		return models.Opportunity{}, ErrOpportunityNotFound
	}

	if _, err := s.resolveApprovedBusiness(ctx, opportunity.BusinessID); err != nil {
		return models.Opportunity{}, ErrOpportunityNotFound
	}

	return opportunity, nil
}

func (s *applicationService) resolveApprovedBusiness(ctx context.Context, id uint) (models.Business, error) {
	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Business{}, ErrBusinessNotFound
		}

		return models.Business{}, err
	}

	if !business.IsApproved() {
		return models.Business{}, ErrBusinessNotFound
	}

	return business, nil
}

func (s *applicationService) checkRequiredAnswers(opportunity models.Opportunity, answers map[string]string) error {
	for _, question := range opportunity.RequiredQuestions() {
		if strings.TrimSpace(answers[question.Prompt]) == "" {
			return fmt.Errorf("%w: required question %q is unanswered", ErrValidation, question.Prompt)
		}
	}

	return nil
}

func (s *applicationService) sanitizeAnswers(answers map[string]string) datatypes.JSONMap {
	sanitized := make(datatypes.JSONMap, len(answers))
	for prompt, answer := range answers {
		sanitized[prompt] = s.sanitizer.Sanitize(answer)
	}

	return sanitized
}
