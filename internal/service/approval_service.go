package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/dto"
	"github.com/talentbridge/talentbridge-go-api/internal/models"
	"github.com/talentbridge/talentbridge-go-api/internal/repository"
)

// ApprovalService is the admission gate: it owns the pending/approved/rejected
// state machine every business must pass before becoming visible to students.
// Both decisions are terminal. The status read is side-effect free and safe to
// poll arbitrarily often concurrently with an admin write; a poll may trail
// the true decision by up to one polling interval.
type ApprovalService interface {
	Approve(ctx context.Context, businessID uint) (dto.BusinessResponse, error)
	Reject(ctx context.Context, businessID uint) (dto.BusinessResponse, error)
	Status(ctx context.Context, businessID uint) (dto.ApprovalStatusResponse, error)
	StatusForPrincipal(ctx context.Context, principalID string) (dto.ApprovalStatusResponse, error)
	List(ctx context.Context, req dto.AdminBusinessListRequest) (dto.AdminBusinessListResponse, error)
}

type approvalService struct {
	repo   repository.BusinessRepository
	mail   MailDelivery
	events EventPublisher
	logger zerolog.Logger
}

// NewApprovalService builds the admission gate.
func NewApprovalService(repo repository.BusinessRepository, mail MailDelivery, events EventPublisher, logger zerolog.Logger) ApprovalService {
	return &approvalService{
		repo:   repo,
		mail:   mail,
		events: events,
		logger: logger.With().Str("component", "approval_service").Logger(),
	}
}

func (s *approvalService) Approve(ctx context.Context, businessID uint) (dto.BusinessResponse, error) {
	return s.decide(ctx, businessID, models.ApprovalApproved, EventBusinessApproved,
		"Your TalentBridge account was approved",
		"Your business account has been approved. Your opportunities are now visible to students.")
}

func (s *approvalService) Reject(ctx context.Context, businessID uint) (dto.BusinessResponse, error) {
	return s.decide(ctx, businessID, models.ApprovalRejected, EventBusinessRejected,
		"Your TalentBridge application was declined",
		"Your business account application was declined.")
}

// decide applies a terminal admission decision. Re-invoking the decision the
// business already carries is a no-op success; the opposite decision fails
// with a StateError. The decision write is never rolled back when the
// follow-up notification fails.
func (s *approvalService) decide(ctx context.Context, businessID uint, target, eventKind, subject, body string) (dto.BusinessResponse, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BusinessResponse{}, ErrBusinessNotFound
		}

		return dto.BusinessResponse{}, err
	}

	if business.ApprovalStatus == target {
		return dto.NewBusinessResponse(business), nil
	}

	if business.ApprovalDecided() {
		return dto.BusinessResponse{}, NewStateError("business", business.ApprovalStatus, target)
	}

	moved, err := s.repo.TransitionApproval(ctx, businessID, models.ApprovalPending, target)
	if err != nil {
		return dto.BusinessResponse{}, err
	}

	if !moved {
		// A concurrent admin decided first. Re-read and treat a matching
		// decision as an idempotent success.
		business, err = s.repo.GetByID(ctx, businessID)
		if err != nil {
			return dto.BusinessResponse{}, err
		}
		if business.ApprovalStatus != target {
			return dto.BusinessResponse{}, NewStateError("business", business.ApprovalStatus, target)
		}

		return dto.NewBusinessResponse(business), nil
	}

	business.ApprovalStatus = target

	if err := s.mail.Deliver(ctx, Mail{To: business.ContactEmail, Subject: subject, Body: body}); err != nil {
		// Notification is best-effort. The decision stands.
		s.logger.Warn().Err(err).Uint("business_id", businessID).Msg("failed to deliver approval notification")
	}

	s.events.Publish(ctx, LifecycleEvent{
		Kind:       eventKind,
		BusinessID: businessID,
		Status:     target,
	})

	s.logger.Info().Uint("business_id", businessID).Str("decision", target).Msg("business admission decided")

	return dto.NewBusinessResponse(business), nil
}

func (s *approvalService) Status(ctx context.Context, businessID uint) (dto.ApprovalStatusResponse, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApprovalStatusResponse{}, ErrBusinessNotFound
		}

		return dto.ApprovalStatusResponse{}, err
	}

	return dto.ApprovalStatusResponse{BusinessID: business.ID, ApprovalStatus: business.ApprovalStatus}, nil
}

func (s *approvalService) StatusForPrincipal(ctx context.Context, principalID string) (dto.ApprovalStatusResponse, error) {
	business, err := s.repo.GetByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApprovalStatusResponse{}, ErrBusinessNotFound
		}

		return dto.ApprovalStatusResponse{}, err
	}

	return dto.ApprovalStatusResponse{BusinessID: business.ID, ApprovalStatus: business.ApprovalStatus}, nil
}

func (s *approvalService) List(ctx context.Context, req dto.AdminBusinessListRequest) (dto.AdminBusinessListResponse, error) {
	filter := repository.BusinessFilter{
		ApprovalStatus: req.ApprovalStatus,
		Search:         req.Search,
		Page:           req.Page,
		PageSize:       req.PageSize,
	}

	businesses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminBusinessListResponse{}, err
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

	return dto.NewAdminBusinessListResponse(businesses, pagination), nil
}
