package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-nalawade/CRM-backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		TokenExpiration: expiration,
		Issuer:          "crm-backend-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(userID, "jane")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jane", claims.Username)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("rejects expired token", func(t *testing.T) {
		service := newTestService(-time.Minute)

		token, _, err := service.GenerateToken(uuid.New(), "jane")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		service := newTestService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:          "another-secret-another-secret-00",
			TokenExpiration: time.Hour,
			Issuer:          "crm-backend-test",
		})

		token, _, err := other.GenerateToken(uuid.New(), "jane")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		service := newTestService(time.Hour)

		_, err := service.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
