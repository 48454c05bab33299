package services

import (
	"errors"
	"fmt"
)

// Error taxonomy for core operations. Controllers translate these to HTTP
// statuses; everything else that goes wrong is a persistence failure and is
// propagated wrapped, never swallowed.
var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNotAParticipant    = errors.New("user is not a participant of this match")
	ErrNoPartnerAvailable = errors.New("no partner available")
)

// NotEligibleError carries the specific reason a gate rejected an action so
// the interface can explain why, not just that it failed.
type NotEligibleError struct {
	Reason string
}

func (e *NotEligibleError) Error() string {
	return "not eligible: " + e.Reason
}

// ValidationError reports invalid caller input (e.g. a letter that is too
// short).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func notEligible(format string, args ...interface{}) error {
	return &NotEligibleError{Reason: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
