package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student represents an individual who can apply to opportunities.
type Student struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	PrincipalID    string                      `gorm:"size:128;uniqueIndex;not null" json:"principal_id"`
	Name           string                      `gorm:"size:255;not null" json:"name"`
	Email          string                      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Skills         datatypes.JSONSlice[string] `gorm:"type:json" json:"skills"`
	DesiredRoles   datatypes.JSONSlice[string] `gorm:"type:json" json:"desired_roles"`
	Bio            string                      `gorm:"size:500" json:"bio"`
	PortfolioURL   string                      `gorm:"size:512" json:"portfolio_url"`
	OpenToMatching bool                        `gorm:"not null;default:false" json:"open_to_matching"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// HasDisplayName reports whether the profile is complete enough to apply.
func (s Student) HasDisplayName() bool {
	return s.Name != ""
}
