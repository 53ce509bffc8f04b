package models

import "time"

// Rating captures post-engagement feedback from a business about a student.
// At most one rating exists per application; creating it is what moves the
// application from completed to rated.
type Rating struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ApplicationID      uint      `gorm:"not null;uniqueIndex" json:"application_id"`
	StudentID          uint      `gorm:"not null;index" json:"student_id"`
	BusinessID         uint      `gorm:"not null;index" json:"business_id"`
	OverallRating      int       `gorm:"not null;check:overall_rating >= 1 AND overall_rating <= 5" json:"overall_rating"`
	Communication      int       `gorm:"not null;check:communication >= 1 AND communication <= 5" json:"communication"`
	Professionalism    int       `gorm:"not null;check:professionalism >= 1 AND professionalism <= 5" json:"professionalism"`
	Quality            int       `gorm:"not null;check:quality >= 1 AND quality <= 5" json:"quality"`
	Feedback           string    `gorm:"type:text" json:"feedback"`
	ProjectCompletedAt time.Time `gorm:"not null" json:"project_completed_at"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

const (
	// RatingScoreMin is the lowest permitted sub-score.
	RatingScoreMin = 1
	// RatingScoreMax is the highest permitted sub-score.
	RatingScoreMax = 5
)

// BadgeStatus is the derived reputation tier for a business.
type BadgeStatus struct {
	Badge             string `json:"badge"`
	CompletedProjects int64  `json:"completed_projects"`
}

const (
	// BadgeNone means the business has no completed engagements yet.
	BadgeNone = "none"
	// BadgeReturning means at least one completed engagement.
	BadgeReturning = "returning"
	// BadgeFrequent means an established track record.
	BadgeFrequent = "frequent"
)

const (
	// BadgeReturningThreshold is the completed-project count that earns "returning".
	BadgeReturningThreshold = 1
	// BadgeFrequentThreshold is the completed-project count that earns "frequent".
	BadgeFrequentThreshold = 3
)

// BadgeForCount resolves the badge tier for a completed-project count.
func BadgeForCount(completed int64) string {
	switch {
	case completed >= BadgeFrequentThreshold:
		return BadgeFrequent
	case completed >= BadgeReturningThreshold:
		return BadgeReturning
	default:
		return BadgeNone
	}
}
