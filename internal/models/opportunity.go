package models

import (
	"time"

	"gorm.io/datatypes"
)

// CustomQuestion is a business-defined prompt attached to an opportunity.
type CustomQuestion struct {
	Prompt   string `json:"prompt"`
	Required bool   `json:"required"`
}

// Opportunity represents a discrete unit of work posted by a business.
// BusinessName is a point-in-time copy of the owning business's name taken at
// creation; it is not updated when the source profile changes.
type Opportunity struct {
	ID             uint                                `gorm:"primaryKey" json:"id"`
	BusinessID     uint                                `gorm:"not null;index" json:"business_id"`
	BusinessName   string                              `gorm:"size:255;not null" json:"business_name"`
	Title          string                              `gorm:"size:100;not null" json:"title"`
	Description    string                              `gorm:"type:text;not null" json:"description"`
	Tags           datatypes.JSONSlice[string]         `gorm:"type:json" json:"tags"`
	Questions      datatypes.JSONSlice[CustomQuestion] `gorm:"type:json" json:"questions"`
	Status         string                              `gorm:"size:32;not null;default:draft;index" json:"status"`
	ApplicantCount int64                               `gorm:"not null;default:0" json:"applicant_count"`
	CreatedAt      time.Time                           `json:"created_at"`
	UpdatedAt      time.Time                           `json:"updated_at"`
	Business       Business                            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

const (
	// OpportunityStatusDraft keeps a posting hidden from the student catalog.
	OpportunityStatusDraft = "draft"
	// OpportunityStatusActive makes a posting visible to students.
	OpportunityStatusActive = "active"
	// OpportunityStatusClosed removes the posting from the catalog. One-way.
	OpportunityStatusClosed = "closed"
)

// IsOpen reports whether the posting accepts new applications.
func (o Opportunity) IsOpen() bool {
	return o.Status == OpportunityStatusActive
}

// RequiredQuestions returns the prompts an applicant must answer.
func (o Opportunity) RequiredQuestions() []CustomQuestion {
	required := make([]CustomQuestion, 0, len(o.Questions))
	for _, q := range o.Questions {
		if q.Required {
			required = append(required, q)
		}
	}
	return required
}
