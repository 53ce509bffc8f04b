package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// ApplicationRepository defines persistence operations for the application
// lifecycle. Every status transition is a conditional single-row write: the
// WHERE clause carries the expected current status, so a lost race surfaces
// as zero affected rows instead of a corrupted state.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (models.Application, error)
	// TransitionStatus moves the application from one status to another.
	// acceptedAt is written in the same UPDATE when non-nil. Returns whether
	// a row changed.
	TransitionStatus(ctx context.Context, id uint, from, to string, acceptedAt *time.Time) (bool, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Application, error)
	ListByBusiness(ctx context.Context, businessID uint, status string) ([]models.Application, error)
	// HasActiveForTarget reports whether a non-rejected application already
	// exists for the (student, opportunity) pair.
	HasActiveForTarget(ctx context.Context, studentID, opportunityID uint) (bool, error)
	// CountCompletedByBusiness tallies applications in completed or rated
	// status, which is the badge aggregation input.
	CountCompletedByBusiness(ctx context.Context, businessID uint) (int64, error)
	// AcceptedStudentIDs returns the distinct students with an accepted
	// application against the business.
	AcceptedStudentIDs(ctx context.Context, businessID uint) ([]uint, error)
	// AcceptedBusinessIDs returns the distinct businesses with an accepted
	// application from the student.
	AcceptedBusinessIDs(ctx context.Context, studentID uint) ([]uint, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository instantiates a GORM-backed repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return models.Application{}, err
	}

	return application, nil
}

func (r *applicationRepository) TransitionStatus(ctx context.Context, id uint, from, to string, acceptedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if acceptedAt != nil {
		updates["accepted_at"] = *acceptedAt
	}

	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *applicationRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) ListByBusiness(ctx context.Context, businessID uint, status string) ([]models.Application, error) {
	query := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.Application
	if err := query.Order("applied_at DESC").Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) HasActiveForTarget(ctx context.Context, studentID, opportunityID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("student_id = ? AND opportunity_id = ? AND status <> ?", studentID, opportunityID, models.ApplicationStatusRejected).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *applicationRepository) CountCompletedByBusiness(ctx context.Context, businessID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("business_id = ? AND status IN ?", businessID, []string{models.ApplicationStatusCompleted, models.ApplicationStatusRated}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *applicationRepository) AcceptedStudentIDs(ctx context.Context, businessID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Distinct("student_id").
		Where("business_id = ? AND status = ?", businessID, models.ApplicationStatusAccepted).
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *applicationRepository) AcceptedBusinessIDs(ctx context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Distinct("business_id").
		Where("student_id = ? AND status = ?", studentID, models.ApplicationStatusAccepted).
		Pluck("business_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
