package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
)

func TestAuthService(t *testing.T) {
	t.Run("Round trips the seat", func(t *testing.T) {
		// Given: A token issued for a player
		auth := NewAuthService("secret", time.Hour)
		token, err := auth.GenerateToken("ABCD", "player-1")
		require.NoError(t, err)

		// When: Parsing it back
		claims, err := auth.ParseToken(token)

		// Then: The game and player are recovered
		require.NoError(t, err)
		assert.Equal(t, "ABCD", claims.GameCode)
		assert.Equal(t, "player-1", claims.Subject)
	})

	t.Run("Rejects a token signed with another key", func(t *testing.T) {
		// Given: A token from a different secret
		token, err := NewAuthService("other", time.Hour).GenerateToken("ABCD", "player-1")
		require.NoError(t, err)

		// When: Parsing it
		_, err = NewAuthService("secret", time.Hour).ParseToken(token)

		// Then: It is unauthorized
		require.ErrorIs(t, err, apperror.ErrInvalidToken)
		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("Rejects an expired token", func(t *testing.T) {
		// Given: A token issued two hours ago with a one hour lifetime
		auth := &authServiceImpl{
			secretKey: []byte("secret"),
			ttl:       time.Hour,
			now:       func() time.Time { return time.Now().Add(-2 * time.Hour) },
		}
		token, err := auth.GenerateToken("ABCD", "player-1")
		require.NoError(t, err)

		// When: Parsing it now
		_, err = NewAuthService("secret", time.Hour).ParseToken(token)

		// Then: It is unauthorized
		require.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		_, err := NewAuthService("secret", time.Hour).ParseToken("not-a-token")

		require.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}
