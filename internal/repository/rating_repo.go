package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// RatingRepository defines persistence operations for post-engagement ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByApplicationID(ctx context.Context, applicationID uint) (models.Rating, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository instantiates a GORM-backed repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) GetByApplicationID(ctx context.Context, applicationID uint) (models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&rating).Error; err != nil {
		return models.Rating{}, err
	}

	return rating, nil
}

func (r *ratingRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	return ratings, nil
}
