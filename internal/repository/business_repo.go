package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// BusinessFilter describes admin listing options.
type BusinessFilter struct {
	ApprovalStatus string
	Search         string
	Page           int
	PageSize       int
}

// BusinessRepository defines persistence operations for business profiles.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id uint) (models.Business, error)
	GetByPrincipal(ctx context.Context, principalID string) (models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	// TransitionApproval performs a conditional single-row write moving the
	// approval status from one value to another. It reports whether a row
	// actually changed, which is how concurrent admin decisions are detected.
	TransitionApproval(ctx context.Context, id uint, from, to string) (bool, error)
	List(ctx context.Context, filter BusinessFilter) ([]models.Business, int64, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Business, error)
}

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository instantiates a GORM-backed repository.
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepository) GetByID(ctx context.Context, id uint) (models.Business, error) {
	var business models.Business
	if err := r.db.WithContext(ctx).First(&business, id).Error; err != nil {
		return models.Business{}, err
	}

	return business, nil
}

func (r *businessRepository) GetByPrincipal(ctx context.Context, principalID string) (models.Business, error) {
	var business models.Business
	if err := r.db.WithContext(ctx).Where("principal_id = ?", principalID).First(&business).Error; err != nil {
		return models.Business{}, err
	}

	return business, nil
}

func (r *businessRepository) Update(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

func (r *businessRepository) TransitionApproval(ctx context.Context, id uint, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("id = ? AND approval_status = ?", id, from).
		Update("approval_status", to)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *businessRepository) List(ctx context.Context, filter BusinessFilter) ([]models.Business, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Business{})

	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", filter.ApprovalStatus)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(industry) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var businesses []models.Business
	if err := query.Find(&businesses).Error; err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

func (r *businessRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Business, error) {
	if len(ids) == 0 {
		return []models.Business{}, nil
	}

	var businesses []models.Business
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&businesses).Error; err != nil {
		return nil, err
	}

	return businesses, nil
}
