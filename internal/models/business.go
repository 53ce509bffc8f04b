package models

import (
	"time"

	"gorm.io/datatypes"
)

// Business represents an organization account with a public listing facet and
// a private operational facet.
type Business struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	PrincipalID    string                      `gorm:"size:128;uniqueIndex;not null" json:"principal_id"`
	CompanyName    string                      `gorm:"size:255;not null" json:"company_name"`
	Location       string                      `gorm:"size:255" json:"location"`
	Industry       string                      `gorm:"size:255" json:"industry"`
	ContactName    string                      `gorm:"size:255" json:"contact_name"`
	ContactEmail   string                      `gorm:"size:255;not null" json:"contact_email"`
	ContactChannel string                      `gorm:"size:64" json:"contact_channel"`
	Needs          string                      `gorm:"type:text" json:"needs"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`
	Phone          string                      `gorm:"size:64" json:"phone"`
	ApprovalStatus string                      `gorm:"size:32;not null;default:pending;index" json:"approval_status"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	Opportunities  []Opportunity               `json:"opportunities,omitempty"`
}

const (
	// ApprovalPending marks a freshly registered business awaiting an admin decision.
	ApprovalPending = "pending"
	// ApprovalApproved marks a business admitted to the public catalog.
	ApprovalApproved = "approved"
	// ApprovalRejected marks a business denied admission. Terminal.
	ApprovalRejected = "rejected"
)

// IsApproved reports whether the business may be shown to students.
func (b Business) IsApproved() bool {
	return b.ApprovalStatus == ApprovalApproved
}

// ApprovalDecided reports whether the admission state machine has left pending.
func (b Business) ApprovalDecided() bool {
	return b.ApprovalStatus != ApprovalPending
}
