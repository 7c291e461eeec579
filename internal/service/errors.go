package service

import (
	"errors"
	"fmt"
)

var (
	// ErrLinkNotFound is returned when a code is unknown, inactive or expired
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkExists is returned when a code is already taken
	ErrLinkExists = errors.New("link code already exists")
	// ErrCodeSpaceExhausted is returned when no free code could be generated
	ErrCodeSpaceExhausted = errors.New("could not generate a free code")
)

// ValidationError reports an invalid input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
