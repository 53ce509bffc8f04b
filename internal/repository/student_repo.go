package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// StudentRepository defines persistence operations for student profiles.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByPrincipal(ctx context.Context, principalID string) (models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	SetOpenToMatching(ctx context.Context, id uint, open bool) error
	ListByIDs(ctx context.Context, ids []uint) ([]models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates a GORM-backed repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetByPrincipal(ctx context.Context, principalID string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("principal_id = ?", principalID).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) SetOpenToMatching(ctx context.Context, id uint, open bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Update("open_to_matching", open)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *studentRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Student, error) {
	if len(ids) == 0 {
		return []models.Student{}, nil
	}

	var students []models.Student
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}
