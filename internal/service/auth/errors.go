// Package auth provides JWT token issuing/validation and password
// verification for the authenticated API surface.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken indicates a token that is malformed, has a bad
	// signature, or carries unexpected claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates a token whose expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)
