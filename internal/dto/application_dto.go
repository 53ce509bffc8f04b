package dto

import (
	"time"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// ApplicationSubmitRequest describes the payload for submitting an
// application. OpportunityID is nil for the legacy posting-less path, in
// which case BusinessID must identify the target business directly.
type ApplicationSubmitRequest struct {
	OpportunityID *uint             `json:"opportunity_id"`
	BusinessID    uint              `json:"business_id" validate:"required_without=OpportunityID"`
	Answers       map[string]string `json:"answers"`
}

// ApplicationResponse is the serialized representation returned to API clients.
type ApplicationResponse struct {
	ID           uint              `json:"id"`
	StudentID    uint              `json:"student_id"`
	StudentName  string            `json:"student_name"`
	StudentEmail string            `json:"student_email"`
	BusinessID   uint              `json:"business_id"`
	BusinessName string            `json:"business_name"`
	Target       models.Target     `json:"target"`
	Answers      map[string]string `json:"answers"`
	Status       string            `json:"status"`
	AppliedAt    time.Time         `json:"applied_at"`
	AcceptedAt   *time.Time        `json:"accepted_at,omitempty"`
}

// NewApplicationResponse converts a model into a DTO.
func NewApplicationResponse(model models.Application) ApplicationResponse {
	answers := make(map[string]string, len(model.Answers))
	for prompt, answer := range model.Answers {
		if text, ok := answer.(string); ok {
			answers[prompt] = text
		}
	}

	return ApplicationResponse{
		ID:           model.ID,
		StudentID:    model.StudentID,
		StudentName:  model.StudentName,
		StudentEmail: model.StudentEmail,
		BusinessID:   model.BusinessID,
		BusinessName: model.BusinessName,
		Target:       model.Target(),
		Answers:      answers,
		Status:       model.Status,
		AppliedAt:    model.AppliedAt,
		AcceptedAt:   model.AcceptedAt,
	}
}

// NewApplicationResponseSlice converts a slice of models into DTOs.
func NewApplicationResponseSlice(applications []models.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, NewApplicationResponse(application))
	}

	return responses
}
