package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
	"github.com/nachocoigodonnell/rixit/internal/entity"
	"github.com/nachocoigodonnell/rixit/internal/rixit"
)

const maxCodeAttempts = 10

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByCode(ctx context.Context, code string) (*entity.Game, error)
	DeleteByCode(ctx context.Context, code string) error
}

// DeckSource supplies the shuffled deck of every new game.
type DeckSource interface {
	NewDeck() []entity.Card
}

type transition func(game *entity.Game) (*entity.Game, error)

type GameManager struct {
	logger *slog.Logger

	gameRepo gameRepo
	ids      IDGenerator
	decks    DeckSource
	locks    *keyLocker
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, ids IDGenerator, decks DeckSource) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		ids:      ids,
		decks:    decks,
		locks:    newKeyLocker(),
	}
}

func (that *GameManager) CreateGame(ctx context.Context, hostName string, playerCount int) (*entity.Game, string, error) {
	log := that.logger.With("method", "CreateGame")

	hostID := that.ids.PlayerID()

	for range maxCodeAttempts {
		code := that.ids.GameCode()

		game, err := rixit.CreateGame(code, hostID, hostName, playerCount, that.decks.NewDeck())
		if err != nil {
			return nil, "", fmt.Errorf("failed to create game: %w", err)
		}

		err = that.gameRepo.Create(ctx, game)
		if errors.Is(err, apperror.ErrGameAlreadyExists) {
			log.Debug("game code taken, drawing another", "gameCode", code)
			continue
		}

		if err != nil {
			log.Error("failed to save game", "gameCode", code, "error", err)
			return nil, "", fmt.Errorf("failed to save game: %w", err)
		}

		log.Info("game created", "gameCode", code, "playerID", hostID, "maxPlayers", playerCount)

		return game, hostID, nil
	}

	return nil, "", fmt.Errorf("failed to allocate a game code after %d attempts: %w", maxCodeAttempts, apperror.ErrGameAlreadyExists)
}

func (that *GameManager) JoinGame(ctx context.Context, code, playerName string) (*entity.Game, string, error) {
	playerID := that.ids.PlayerID()

	game, err := that.mutate(ctx, "JoinGame", code, func(game *entity.Game) (*entity.Game, error) {
		return rixit.Join(game, playerID, playerName)
	})
	if err != nil {
		return nil, "", err
	}

	return game, playerID, nil
}

func (that *GameManager) StartRound(ctx context.Context, code, actorID string) (*entity.Game, error) {
	return that.mutate(ctx, "StartRound", code, func(game *entity.Game) (*entity.Game, error) {
		return rixit.StartRound(game, actorID)
	})
}

func (that *GameManager) SubmitClue(ctx context.Context, code, actorID, clue, cardID string) (*entity.Game, error) {
	return that.mutate(ctx, "SubmitClue", code, func(game *entity.Game) (*entity.Game, error) {
		return rixit.SubmitClue(game, actorID, clue, cardID)
	})
}

func (that *GameManager) SubmitCard(ctx context.Context, code, actorID, cardID string) (*entity.Game, error) {
	return that.mutate(ctx, "SubmitCard", code, func(game *entity.Game) (*entity.Game, error) {
		return rixit.SubmitCard(game, actorID, cardID)
	})
}

func (that *GameManager) VoteCard(ctx context.Context, code, actorID, cardID string) (*entity.Game, error) {
	return that.mutate(ctx, "VoteCard", code, func(game *entity.Game) (*entity.Game, error) {
		return rixit.Vote(game, actorID, cardID)
	})
}

func (that *GameManager) RevealRound(ctx context.Context, code string) (*entity.Game, error) {
	return that.mutate(ctx, "RevealRound", code, rixit.Reveal)
}

func (that *GameManager) GetGame(ctx context.Context, code string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// LeaveGame removes the player. The returned snapshot has no players when
// the last one left; that game is deleted rather than stored.
func (that *GameManager) LeaveGame(ctx context.Context, code, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "LeaveGame")

	code = NormalizeCode(code)

	unlock := that.locks.lock(code)
	defer unlock()

	game, err := that.gameRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	next, err := rixit.Leave(game, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to leave game: %w", err)
	}

	if len(next.Players) == 0 {
		if err = that.gameRepo.DeleteByCode(ctx, code); err != nil {
			log.Error("failed to delete empty game", "gameCode", code, "error", err)
			return nil, fmt.Errorf("failed to delete game: %w", err)
		}

		log.Info("last player left, game deleted", "gameCode", code, "playerID", playerID)

		return next, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, next); err != nil {
		log.Error("failed to update game", "gameCode", code, "error", err)
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Info("player left", "gameCode", code, "playerID", playerID, "stage", next.Stage)

	return next, nil
}

// mutate runs one transition under the game's lock: load, apply, store.
// A rejected transition stores nothing.
func (that *GameManager) mutate(ctx context.Context, method, code string, apply transition) (*entity.Game, error) {
	log := that.logger.With("method", method)

	code = NormalizeCode(code)

	unlock := that.locks.lock(code)
	defer unlock()

	game, err := that.gameRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	next, err := apply(game)
	if err != nil {
		log.Debug("intent rejected", "gameCode", code, "error", err)
		return nil, fmt.Errorf("%s rejected: %w", method, err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, next); err != nil {
		log.Error("failed to update game", "gameCode", code, "error", err)
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Info("game updated", "gameCode", code, "stage", next.Stage, "round", next.Round)

	return next, nil
}
