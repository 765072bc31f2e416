package usecase

import (
	"context"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/nachocoigodonnell/rixit/internal/entity"
	"github.com/nachocoigodonnell/rixit/internal/rixit"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) Create(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)

	return args.Error(0)
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)

	return args.Error(0)
}

func (that *mockGameRepo) GetByCode(ctx context.Context, code string) (*entity.Game, error) {
	args := that.Called(ctx, code)

	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByCode(ctx context.Context, code string) error {
	args := that.Called(ctx, code)

	return args.Error(0)
}

// sequenceIDs hands out the listed codes in order, then repeats the last one.
// Player ids are numbered.
type sequenceIDs struct {
	mu      sync.Mutex
	codes   []string
	next    int
	players int
}

func (that *sequenceIDs) GameCode() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := that.codes[min(that.next, len(that.codes)-1)]
	that.next++

	return code
}

func (that *sequenceIDs) PlayerID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players++

	return "player-" + string(rune('a'+that.players-1))
}

// stackedDecks deals every game the same deck with front on top.
type stackedDecks struct {
	front []string
}

func (that stackedDecks) NewDeck() []entity.Card {
	deck := make([]entity.Card, 0, rixit.DeckSize)
	for _, id := range that.front {
		deck = append(deck, entity.NewCard(id))
	}

	for _, card := range rixit.Universe() {
		if !slices.Contains(that.front, card.ID) {
			deck = append(deck, card)
		}
	}

	return deck
}
