package dto

import (
	"time"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// BusinessRegisterRequest describes the payload for registering a business.
type BusinessRegisterRequest struct {
	CompanyName    string   `json:"company_name" validate:"required,min=2,max=255"`
	Location       string   `json:"location" validate:"omitempty,max=255"`
	Industry       string   `json:"industry" validate:"omitempty,max=255"`
	ContactName    string   `json:"contact_name" validate:"required,max=255"`
	ContactEmail   string   `json:"contact_email" validate:"required,email"`
	ContactChannel string   `json:"contact_channel" validate:"omitempty,oneof=email phone"`
	Needs          string   `json:"needs" validate:"omitempty"`
	Tags           []string `json:"tags" validate:"omitempty,dive,min=1"`
	Phone          string   `json:"phone" validate:"omitempty,max=64"`
}

// BusinessUpdateRequest describes an owner-driven partial profile update.
// It never carries the approval status; only the admin gate mutates that.
type BusinessUpdateRequest struct {
	CompanyName    *string   `json:"company_name" validate:"omitempty,min=2,max=255"`
	Location       *string   `json:"location" validate:"omitempty,max=255"`
	Industry       *string   `json:"industry" validate:"omitempty,max=255"`
	ContactName    *string   `json:"contact_name" validate:"omitempty,max=255"`
	ContactChannel *string   `json:"contact_channel" validate:"omitempty,oneof=email phone"`
	Needs          *string   `json:"needs"`
	Tags           *[]string `json:"tags" validate:"omitempty,dive,min=1"`
	Phone          *string   `json:"phone" validate:"omitempty,max=64"`
}

// BusinessResponse is the owner-facing representation, private facet included.
type BusinessResponse struct {
	ID             uint      `json:"id"`
	CompanyName    string    `json:"company_name"`
	Location       string    `json:"location"`
	Industry       string    `json:"industry"`
	ContactName    string    `json:"contact_name"`
	ContactEmail   string    `json:"contact_email"`
	ContactChannel string    `json:"contact_channel"`
	Needs          string    `json:"needs"`
	Tags           []string  `json:"tags"`
	Phone          string    `json:"phone"`
	ApprovalStatus string    `json:"approval_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BusinessPublicResponse is the facet rendered to other parties. It exists
// only for approved businesses and carries no private fields.
type BusinessPublicResponse struct {
	ID             uint     `json:"id"`
	CompanyName    string   `json:"company_name"`
	Location       string   `json:"location"`
	Industry       string   `json:"industry"`
	ContactName    string   `json:"contact_name"`
	ContactChannel string   `json:"contact_channel"`
	Needs          string   `json:"needs"`
	Tags           []string `json:"tags"`
}

// ApprovalStatusResponse is the poll payload for the admission gate.
type ApprovalStatusResponse struct {
	BusinessID     uint   `json:"business_id"`
	ApprovalStatus string `json:"approval_status"`
}

// NewBusinessResponse converts a model into the owner-facing DTO.
func NewBusinessResponse(model models.Business) BusinessResponse {
	return BusinessResponse{
		ID:             model.ID,
		CompanyName:    model.CompanyName,
		Location:       model.Location,
		Industry:       model.Industry,
		ContactName:    model.ContactName,
		ContactEmail:   model.ContactEmail,
		ContactChannel: model.ContactChannel,
		Needs:          model.Needs,
		Tags:           model.Tags,
		Phone:          model.Phone,
		ApprovalStatus: model.ApprovalStatus,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewBusinessPublicResponse converts a model into its public facet.
func NewBusinessPublicResponse(model models.Business) BusinessPublicResponse {
	return BusinessPublicResponse{
		ID:             model.ID,
		CompanyName:    model.CompanyName,
		Location:       model.Location,
		Industry:       model.Industry,
		ContactName:    model.ContactName,
		ContactChannel: model.ContactChannel,
		Needs:          model.Needs,
		Tags:           model.Tags,
	}
}

// NewBusinessPublicResponseSlice converts a slice of models into public facets.
func NewBusinessPublicResponseSlice(businesses []models.Business) []BusinessPublicResponse {
	responses := make([]BusinessPublicResponse, 0, len(businesses))
	for _, business := range businesses {
		responses = append(responses, NewBusinessPublicResponse(business))
	}

	return responses
}
