package usecase

import (
	"context"

	"github.com/nachocoigodonnell/rixit/internal/entity"
)

// GameUseCase is everything a transport can ask of a game. Mutating calls
// return the snapshot that was persisted.
type GameUseCase interface {
	CreateGame(ctx context.Context, hostName string, playerCount int) (*entity.Game, string, error)
	JoinGame(ctx context.Context, code, playerName string) (*entity.Game, string, error)
	LeaveGame(ctx context.Context, code, playerID string) (*entity.Game, error)

	StartRound(ctx context.Context, code, actorID string) (*entity.Game, error)
	SubmitClue(ctx context.Context, code, actorID, clue, cardID string) (*entity.Game, error)
	SubmitCard(ctx context.Context, code, actorID, cardID string) (*entity.Game, error)
	VoteCard(ctx context.Context, code, actorID, cardID string) (*entity.Game, error)
	RevealRound(ctx context.Context, code string) (*entity.Game, error)

	GetGame(ctx context.Context, code string) (*entity.Game, error)
}
