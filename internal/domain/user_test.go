package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		expectError error
	}{
		{
			name:     "valid user",
			email:    "owner@example.com",
			password: "password123",
		},
		{
			name:        "empty email",
			email:       "",
			password:    "password123",
			expectError: domain.ErrEmptyEmail,
		},
		{
			name:        "missing at sign",
			email:       "owner.example.com",
			password:    "password123",
			expectError: domain.ErrInvalidEmail,
		},
		{
			name:        "missing domain dot",
			email:       "owner@example",
			password:    "password123",
			expectError: domain.ErrInvalidEmail,
		},
		{
			name:        "short password",
			email:       "owner@example.com",
			password:    "short",
			expectError: domain.ErrPasswordTooShort,
		},
		{
			name:        "password over bcrypt limit",
			email:       "owner@example.com",
			password:    strings.Repeat("x", 73),
			expectError: domain.ErrPasswordTooLong,
		},
		{
			name:        "empty password",
			email:       "owner@example.com",
			password:    "",
			expectError: domain.ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := domain.NewUser(tt.email, "Owner", tt.password)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.EqualValues(t, 0, user.ID)
		})
	}
}

func TestUserValidateWithHashOnly(t *testing.T) {
	// Users loaded from the store carry only the hash.
	user := &domain.User{
		Email:          "owner@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())
}
