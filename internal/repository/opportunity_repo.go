package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// OpportunityFilter describes catalog listing options.
type OpportunityFilter struct {
	Search   string
	Page     int
	PageSize int
}

// OpportunityRepository defines persistence operations for opportunities.
type OpportunityRepository interface {
	Create(ctx context.Context, opportunity *models.Opportunity) error
	GetByID(ctx context.Context, id uint) (models.Opportunity, error)
	Update(ctx context.Context, opportunity *models.Opportunity) error
	// Close flips the posting to closed. Closing is one-directional; closing
	// an already closed posting is a no-op.
	Close(ctx context.Context, id uint) error
	// ListPublic returns active postings whose owning business is approved.
	ListPublic(ctx context.Context, filter OpportunityFilter) ([]models.Opportunity, int64, error)
	ListByBusiness(ctx context.Context, businessID uint) ([]models.Opportunity, error)
	// IncrementApplicants bumps the applicant counter with a single atomic
	// UPDATE so concurrent submitters never lose increments.
	IncrementApplicants(ctx context.Context, id uint) error
}

type opportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository instantiates a GORM-backed repository.
func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) Create(ctx context.Context, opportunity *models.Opportunity) error {
	return r.db.WithContext(ctx).Create(opportunity).Error
}

func (r *opportunityRepository) GetByID(ctx context.Context, id uint) (models.Opportunity, error) {
	var opportunity models.Opportunity
	if err := r.db.WithContext(ctx).First(&opportunity, id).Error; err != nil {
		return models.Opportunity{}, err
	}

	return opportunity, nil
}

func (r *opportunityRepository) Update(ctx context.Context, opportunity *models.Opportunity) error {
	return r.db.WithContext(ctx).Save(opportunity).Error
}

func (r *opportunityRepository) Close(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Opportunity{}).
		Where("id = ?", id).
		Update("status", models.OpportunityStatusClosed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Opportunity{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	return nil
}

func (r *opportunityRepository) ListPublic(ctx context.Context, filter OpportunityFilter) ([]models.Opportunity, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Opportunity{}).
		Joins("JOIN businesses ON businesses.id = opportunities.business_id").
		Where("opportunities.status = ?", models.OpportunityStatusActive).
		Where("businesses.approval_status = ?", models.ApprovalApproved)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(opportunities.title) LIKE ? OR LOWER(opportunities.description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("opportunities.created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var opportunities []models.Opportunity
	if err := query.Find(&opportunities).Error; err != nil {
		return nil, 0, err
	}

	return opportunities, total, nil
}

func (r *opportunityRepository) ListByBusiness(ctx context.Context, businessID uint) ([]models.Opportunity, error) {
	var opportunities []models.Opportunity
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&opportunities).Error
	if err != nil {
		return nil, err
	}

	return opportunities, nil
}

func (r *opportunityRepository) IncrementApplicants(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Opportunity{}).
		Where("id = ?", id).
		Update("applicant_count", gorm.Expr("applicant_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
