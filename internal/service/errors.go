package service

import (
	"errors"
	"fmt"
)

var (
	// ErrBusinessNotFound indicates the referenced business does not exist or
	// is not visible to the caller.
	ErrBusinessNotFound = errors.New("business not found")
	// ErrStudentNotFound indicates the referenced student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrOpportunityNotFound indicates the referenced opportunity does not exist.
	ErrOpportunityNotFound = errors.New("opportunity not found")
	// ErrApplicationNotFound indicates the referenced application does not exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrRatingNotFound indicates no rating exists for the application.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrValidation wraps domain-level input rejections that go-playground
	// struct tags cannot express, such as an unanswered required question.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateApplication indicates the student already has a live
	// application against the opportunity.
	ErrDuplicateApplication = errors.New("application already exists for this opportunity")
)

// StateError reports an operation that is not legal from the entity's current
// lifecycle state. No write is performed when it is returned.
type StateError struct {
	Entity string
	From   string
	To     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// NewStateError builds a StateError for an illegal transition.
func NewStateError(entity, from, to string) *StateError {
	return &StateError{Entity: entity, From: from, To: to}
}

// IsStateError reports whether err is a lifecycle state violation.
func IsStateError(err error) bool {
	var stateErr *StateError
	return errors.As(err, &stateErr)
}
