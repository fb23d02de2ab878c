package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier compares a stored password hash against a candidate
// plaintext password.
type PasswordVerifier interface {
	// Compare returns nil if the candidate matches the hash.
	Compare(hashedPassword, candidate string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new bcrypt-based password verifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Ensure BcryptVerifier implements PasswordVerifier interface
var _ PasswordVerifier = (*BcryptVerifier)(nil)

// Compare implements PasswordVerifier.Compare
func (v *BcryptVerifier) Compare(hashedPassword, candidate string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(candidate))
}
