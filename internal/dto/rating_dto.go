package dto

import (
	"time"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// RatingSubmitRequest describes the payload for rating a completed engagement.
type RatingSubmitRequest struct {
	OverallRating   int    `json:"overall_rating" validate:"required,min=1,max=5"`
	Communication   int    `json:"communication" validate:"required,min=1,max=5"`
	Professionalism int    `json:"professionalism" validate:"required,min=1,max=5"`
	Quality         int    `json:"quality" validate:"required,min=1,max=5"`
	Feedback        string `json:"feedback" validate:"omitempty,max=2000"`
}

// RatingResponse is the serialized representation returned to API clients.
type RatingResponse struct {
	ID                 uint      `json:"id"`
	ApplicationID      uint      `json:"application_id"`
	StudentID          uint      `json:"student_id"`
	BusinessID         uint      `json:"business_id"`
	OverallRating      int       `json:"overall_rating"`
	Communication      int       `json:"communication"`
	Professionalism    int       `json:"professionalism"`
	Quality            int       `json:"quality"`
	Feedback           string    `json:"feedback"`
	ProjectCompletedAt time.Time `json:"project_completed_at"`
}

// AverageRatingResponse reports a student's mean overall score. HasRatings is
// false when no ratings exist; Average is meaningless in that case and callers
// must branch on the flag rather than read zero.
type AverageRatingResponse struct {
	StudentID  uint    `json:"student_id"`
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
	HasRatings bool    `json:"has_ratings"`
}

// NewRatingResponse converts a model into a DTO.
func NewRatingResponse(model models.Rating) RatingResponse {
	return RatingResponse{
		ID:                 model.ID,
		ApplicationID:      model.ApplicationID,
		StudentID:          model.StudentID,
		BusinessID:         model.BusinessID,
		OverallRating:      model.OverallRating,
		Communication:      model.Communication,
		Professionalism:    model.Professionalism,
		Quality:            model.Quality,
		Feedback:           model.Feedback,
		ProjectCompletedAt: model.ProjectCompletedAt,
	}
}
