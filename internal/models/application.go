package models

import (
	"time"

	"gorm.io/datatypes"
)

// Application represents one student's relationship to one posting, from
// submission to a terminal outcome. StudentName, StudentEmail and BusinessName
// are point-in-time copies taken at submission; they do not track later profile
// edits.
type Application struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	StudentID        uint              `gorm:"not null;index" json:"student_id"`
	StudentName      string            `gorm:"size:255;not null" json:"student_name"`
	StudentEmail     string            `gorm:"size:255;not null" json:"student_email"`
	BusinessID       uint              `gorm:"not null;index" json:"business_id"`
	BusinessName     string            `gorm:"size:255;not null" json:"business_name"`
	OpportunityID    *uint             `gorm:"index" json:"opportunity_id"`
	OpportunityTitle string            `gorm:"size:100" json:"opportunity_title"`
	Answers          datatypes.JSONMap `gorm:"type:json" json:"answers"`
	Status           string            `gorm:"size:32;not null;default:pending;index" json:"status"`
	AppliedAt        time.Time         `gorm:"not null" json:"applied_at"`
	AcceptedAt       *time.Time        `json:"accepted_at"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

const (
	// ApplicationStatusPending means the business has not decided yet.
	ApplicationStatusPending = "pending"
	// ApplicationStatusAccepted means the business took the student on.
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected is terminal; no further transitions.
	ApplicationStatusRejected = "rejected"
	// ApplicationStatusCompleted means the engagement finished and awaits a rating.
	ApplicationStatusCompleted = "completed"
	// ApplicationStatusRated is terminal; exactly one rating is attached.
	ApplicationStatusRated = "rated"
)

// applicationEdges maps each reachable status to the single status it may be
// entered from. Submission creates records directly in pending.
var applicationEdges = map[string]string{
	ApplicationStatusAccepted:  ApplicationStatusPending,
	ApplicationStatusRejected:  ApplicationStatusPending,
	ApplicationStatusCompleted: ApplicationStatusAccepted,
	ApplicationStatusRated:     ApplicationStatusCompleted,
}

// CanTransition reports whether moving the application to target is a legal
// forward edge of the lifecycle.
func (a Application) CanTransition(target string) bool {
	from, ok := applicationEdges[target]
	return ok && a.Status == from
}

// TargetKind discriminates what an application was submitted against.
type TargetKind string

const (
	// TargetOpportunity ties the application to a catalog posting.
	TargetOpportunity TargetKind = "opportunity"
	// TargetLegacy covers applications predating the opportunity catalog.
	TargetLegacy TargetKind = "legacy"
)

// Target is the tagged form of the application's submission target.
type Target struct {
	Kind          TargetKind `json:"kind"`
	OpportunityID uint       `json:"opportunity_id,omitempty"`
	Title         string     `json:"title,omitempty"`
}

// Target returns the tagged variant of the submission target so callers can
// switch exhaustively instead of nil-checking the raw pointer.
func (a Application) Target() Target {
	if a.OpportunityID == nil {
		return Target{Kind: TargetLegacy}
	}
	return Target{Kind: TargetOpportunity, OpportunityID: *a.OpportunityID, Title: a.OpportunityTitle}
}

// IsTerminal reports whether no further lifecycle transitions are possible.
func (a Application) IsTerminal() bool {
	return a.Status == ApplicationStatusRejected || a.Status == ApplicationStatusRated
}

// CountsAsCompleted reports whether the application contributes to the owning
// business's completed-project tally.
func (a Application) CountsAsCompleted() bool {
	return a.Status == ApplicationStatusCompleted || a.Status == ApplicationStatusRated
}
