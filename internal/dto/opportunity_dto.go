package dto

import (
	"time"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// QuestionPayload mirrors a custom question on the wire.
type QuestionPayload struct {
	Prompt   string `json:"prompt" validate:"required,min=3,max=500"`
	Required bool   `json:"required"`
}

// OpportunityCreateRequest describes the payload for posting an opportunity.
type OpportunityCreateRequest struct {
	Title       string            `json:"title" validate:"required,min=3,max=100"`
	Description string            `json:"description" validate:"required,min=10"`
	Tags        []string          `json:"tags" validate:"required,min=1,dive,min=1"`
	Questions   []QuestionPayload `json:"questions" validate:"omitempty,dive"`
	Status      string            `json:"status" validate:"omitempty,oneof=draft active"`
}

// OpportunityUpdateRequest describes a partial edit of a posting.
type OpportunityUpdateRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string            `json:"description" validate:"omitempty,min=10"`
	Tags        *[]string          `json:"tags" validate:"omitempty,min=1,dive,min=1"`
	Questions   *[]QuestionPayload `json:"questions" validate:"omitempty,dive"`
	Status      *string            `json:"status" validate:"omitempty,oneof=draft active"`
}

// OpportunityResponse is the serialized representation returned to API clients.
// Badge is populated only on the student-facing catalog listing.
type OpportunityResponse struct {
	ID             uint                `json:"id"`
	BusinessID     uint                `json:"business_id"`
	BusinessName   string              `json:"business_name"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Tags           []string            `json:"tags"`
	Questions      []QuestionPayload   `json:"questions"`
	Status         string              `json:"status"`
	ApplicantCount int64               `json:"applicant_count"`
	Badge          *models.BadgeStatus `json:"badge,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// OpportunityListRequest describes catalog listing filters.
type OpportunityListRequest struct {
	Search   string `query:"search"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// OpportunityListResponse wraps a page of catalog results.
type OpportunityListResponse struct {
	Items      []OpportunityResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// NewOpportunityResponse converts a model into a DTO.
func NewOpportunityResponse(model models.Opportunity) OpportunityResponse {
	questions := make([]QuestionPayload, 0, len(model.Questions))
	for _, q := range model.Questions {
		questions = append(questions, QuestionPayload{Prompt: q.Prompt, Required: q.Required})
	}

	return OpportunityResponse{
		ID:             model.ID,
		BusinessID:     model.BusinessID,
		BusinessName:   model.BusinessName,
		Title:          model.Title,
		Description:    model.Description,
		Tags:           model.Tags,
		Questions:      questions,
		Status:         model.Status,
		ApplicantCount: model.ApplicantCount,
		CreatedAt:      model.CreatedAt,
	}
}

// NewOpportunityResponseSlice converts a slice of models into DTOs.
func NewOpportunityResponseSlice(opportunities []models.Opportunity) []OpportunityResponse {
	responses := make([]OpportunityResponse, 0, len(opportunities))
	for _, opportunity := range opportunities {
		responses = append(responses, NewOpportunityResponse(opportunity))
	}

	return responses
}
