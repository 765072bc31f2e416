package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
	"github.com/nachocoigodonnell/rixit/internal/entity"
	"github.com/nachocoigodonnell/rixit/testing/suite"
)

func newTestGame(code string) *entity.Game {
	game := entity.NewGame(code, 4, []entity.Card{entity.NewCard("001"), entity.NewCard("002")})
	game.HostID = "player-1"
	game.Players = append(game.Players, entity.NewPlayer("player-1", "Alice", true))
	game.Players[0].Hand = []entity.Card{entity.NewCard("003")}

	return game
}

func TestGameRepository_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a fresh game
		game := newTestGame("ABCD")

		// When: Create is called
		err := gameRepo.Create(ctx, game)

		// Then: the game is stored with an expiry
		require.NoError(t, err)

		ttl, err := st.Storage.TTL(ctx, "game:ABCD").Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)
	})

	t.Run("Create_CodeTaken", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a game already stored under the code
		require.NoError(t, gameRepo.Create(ctx, newTestGame("ABCD")))

		// When: Create is called again for the same code
		err := gameRepo.Create(ctx, newTestGame("ABCD"))

		// Then: the code is reported as taken
		require.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
	})
}

func TestGameRepository_GetByCode(t *testing.T) {
	t.Run("GetByCode_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a stored game
		game := newTestGame("ABCD")
		game.Stage = entity.StageSubmit
		game.Submissions = append(game.Submissions, entity.Submission{PlayerID: "player-1", CardID: "004"})

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByCode is called with the code
		retrievedGame, err := gameRepo.GetByCode(ctx, "ABCD")

		// Then: the retrieved game matches the saved one
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByCode_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: GetByCode is called with an unknown code
		retrievedGame, err := gameRepo.GetByCode(ctx, "ZZZZ")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByCode(t *testing.T) {
	t.Run("DeleteByCode_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a stored game
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, newTestGame("ABCD")))

		// When: DeleteByCode is called
		err := gameRepo.DeleteByCode(ctx, "ABCD")

		// Then: the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByCode(ctx, "ABCD")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByCode_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: DeleteByCode is called with an unknown code
		err := gameRepo.DeleteByCode(ctx, "ZZZZ")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
