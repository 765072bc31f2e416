package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
	"github.com/nachocoigodonnell/rixit/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]*entity.Game
}

// NewMemoryGameRepository keeps games in process memory. Stored and returned
// games are clones, so callers never share state with the store.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]*entity.Game),
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.Code]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, game.Code)
	}

	that.games[game.Code] = game.Clone()

	return nil
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.Code] = game.Clone()

	return nil
}

func (that *memoryGame) GetByCode(_ context.Context, code string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[code]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return game.Clone(), nil
}

func (that *memoryGame) DeleteByCode(_ context.Context, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[code]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, code)

	return nil
}
