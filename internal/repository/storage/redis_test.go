package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRedisStorage(t *testing.T) {
	t.Run("Fails when nothing listens on the address", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		redisStorage, err := NewRedisStorage(ctx, "127.0.0.1:1", "", 0)

		require.Error(t, err)
		require.Nil(t, redisStorage)
	})
}
