// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrInvalidDateTime is returned when a date-time string does not match
	// the expected "2006-01-02 15:04:05" layout.
	ErrInvalidDateTime = fmt.Errorf("%w: date-time must match format 2006-01-02 15:04:05", ErrValidation)
)
