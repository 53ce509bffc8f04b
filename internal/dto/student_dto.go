package dto

import (
	"time"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// StudentRegisterRequest describes the payload for registering a student.
type StudentRegisterRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=255"`
	Email        string   `json:"email" validate:"required,email"`
	Skills       []string `json:"skills" validate:"omitempty,dive,min=1"`
	DesiredRoles []string `json:"desired_roles" validate:"omitempty,dive,min=1"`
	Bio          string   `json:"bio" validate:"omitempty,max=500"`
	PortfolioURL string   `json:"portfolio_url" validate:"omitempty,url,max=512"`
}

// StudentUpdateRequest describes an owner-driven partial profile update.
// The matching flag has its own endpoint and is not settable here.
type StudentUpdateRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=2,max=255"`
	Skills       *[]string `json:"skills" validate:"omitempty,dive,min=1"`
	DesiredRoles *[]string `json:"desired_roles" validate:"omitempty,dive,min=1"`
	Bio          *string   `json:"bio" validate:"omitempty,max=500"`
	PortfolioURL *string   `json:"portfolio_url" validate:"omitempty,url,max=512"`
}

// MatchingRequest toggles the student's opt-in matching flag.
type MatchingRequest struct {
	Open bool `json:"open"`
}

// StudentResponse is the serialized representation returned to API clients.
type StudentResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Skills         []string  `json:"skills"`
	DesiredRoles   []string  `json:"desired_roles"`
	Bio            string    `json:"bio"`
	PortfolioURL   string    `json:"portfolio_url"`
	OpenToMatching bool      `json:"open_to_matching"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		Skills:         model.Skills,
		DesiredRoles:   model.DesiredRoles,
		Bio:            model.Bio,
		PortfolioURL:   model.PortfolioURL,
		OpenToMatching: model.OpenToMatching,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
