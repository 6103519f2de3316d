package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrPublisherDisabled = errors.New("menu publisher is not configured")
)

// ValidationError reports the first invalid field on save.
type ValidationError struct {
	Field  string
	Label  string
	Reason string
}

const (
	ReasonRequired   = "is required"
	ReasonNotAllowed = "has a value that is not offered"
)

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = ReasonRequired
	}
	return fmt.Sprintf("field %q %s", e.Label, reason)
}

// SubscriptionError is a snapshot failure for a single category. The store
// keeps serving the last good records for that category.
type SubscriptionError struct {
	Category string
	Err      error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("subscription for %s: %v", e.Category, e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }
