package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntokozodev/user-tasks-api/internal/config"
)

const testSecret = "test-jwt-secret-at-least-32-chars-long"

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTService(t *testing.T) {
	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
}

func TestValidateTokenFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("expired token", func(t *testing.T) {
		svc := newTestJWTService(t)

		issuedAt := time.Now().Add(-3 * time.Hour)
		svc.timeFunc = func() time.Time { return issuedAt }
		token, err := svc.GenerateToken(ctx, 42)
		require.NoError(t, err)

		// Validate well past expiry plus clock skew.
		svc.timeFunc = time.Now
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("expiry within clock skew is tolerated", func(t *testing.T) {
		svc := newTestJWTService(t)

		now := time.Now()
		svc.timeFunc = func() time.Time { return now.Add(-61 * time.Minute) }
		token, err := svc.GenerateToken(ctx, 42)
		require.NoError(t, err)

		// One minute past expiry, inside the two-minute skew window.
		svc.timeFunc = func() time.Time { return now }
		claims, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.EqualValues(t, 42, claims.UserID)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		svc := newTestJWTService(t)
		token, err := svc.GenerateToken(ctx, 42)
		require.NoError(t, err)

		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "another-jwt-secret-at-least-32-chars",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		_, err = other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestJWTService(t)

		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		svc := newTestJWTService(t)

		_, err := svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGenerateTokenUniqueIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(t)

	first, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)
	second, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)

	// Each token carries a unique ID, so two tokens for the same user differ.
	assert.NotEqual(t, first, second)
}
