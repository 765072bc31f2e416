package rixit

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nachocoigodonnell/rixit/internal/entity"
)

// seqRand replays values; each value is reduced modulo n.
type seqRand struct {
	values []int
	next   int
}

func (that *seqRand) Intn(n int) int {
	v := that.values[that.next%len(that.values)]
	that.next++

	return v % n
}

// stackedDeck puts front on top, followed by the rest of the universe in id order.
func stackedDeck(front ...string) []entity.Card {
	deck := make([]entity.Card, 0, DeckSize)
	for _, id := range front {
		deck = append(deck, entity.NewCard(id))
	}

	for _, card := range Universe() {
		if !slices.Contains(front, card.ID) {
			deck = append(deck, card)
		}
	}

	return deck
}

// newScenarioLobby seats Alice (host), Bob and Cara so that Alice holds 014,
// Bob holds 027 and Cara holds 033.
func newScenarioLobby(t *testing.T) *entity.Game {
	t.Helper()

	deck := stackedDeck(
		"014", "001", "002", "003", "004", "005",
		"027", "006", "007", "008", "009", "010",
		"033", "011", "012", "013", "015", "016",
	)

	game, err := CreateGame("ABCD", "alice", "Alice", 4, deck)
	require.NoError(t, err)

	game, err = Join(game, "bob", "Bob")
	require.NoError(t, err)

	game, err = Join(game, "cara", "Cara")
	require.NoError(t, err)

	return game
}

// stepper returns a helper that fails the test on a rejected transition and
// checks card conservation on the accepted one.
func stepper(t *testing.T) func(*entity.Game, error) *entity.Game {
	t.Helper()

	return func(game *entity.Game, err error) *entity.Game {
		t.Helper()

		require.NoError(t, err)
		requireCardsConserved(t, game)

		return game
	}
}

// requireCardsConserved checks that every card of the universe sits in
// exactly one place: a hand, the deck, the discard or a submission.
func requireCardsConserved(t *testing.T, game *entity.Game) {
	t.Helper()

	seen := make(map[string]int, DeckSize)
	for _, card := range game.Deck {
		seen[card.ID]++
	}
	for _, card := range game.Discard {
		seen[card.ID]++
	}
	for _, player := range game.Players {
		for _, card := range player.Hand {
			seen[card.ID]++
		}
	}
	for _, submission := range game.Submissions {
		seen[submission.CardID]++
	}

	require.Len(t, seen, DeckSize)
	for id, count := range seen {
		require.Equal(t, 1, count, "card %s", id)
	}
}

func scoresOf(game *entity.Game) map[string]int {
	scores := make(map[string]int, len(game.Players))
	for _, player := range game.Players {
		scores[player.ID] = player.Score
	}

	return scores
}
