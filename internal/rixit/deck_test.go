package rixit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nachocoigodonnell/rixit/internal/entity"
)

func TestUniverse(t *testing.T) {
	t.Run("Holds sixty distinct cards in id order", func(t *testing.T) {
		// When: Asking for the universe
		cards := Universe()

		// Then: Ids run from 001 to 060 without repeats
		require.Len(t, cards, DeckSize)
		assert.Equal(t, "001", cards[0].ID)
		assert.Equal(t, "060", cards[DeckSize-1].ID)
		assert.Equal(t, "/cards/014.jpg", cards[13].ImageURL)

		seen := make(map[string]bool, DeckSize)
		for _, card := range cards {
			assert.False(t, seen[card.ID], card.ID)
			seen[card.ID] = true
		}
	})

	t.Run("Returns a copy", func(t *testing.T) {
		// Given: A universe that has been tampered with
		cards := Universe()
		cards[0] = entity.NewCard("xxx")

		// Then: The next call is unaffected
		assert.Equal(t, "001", Universe()[0].ID)
	})
}

func TestShuffle(t *testing.T) {
	cards := []entity.Card{entity.NewCard("a"), entity.NewCard("b"), entity.NewCard("c"), entity.NewCard("d")}

	t.Run("Swaps from the back with the drawn index", func(t *testing.T) {
		// Given: A source that always draws zero
		rnd := &seqRand{values: []int{0}}

		// When: Shuffling
		shuffled := Shuffle(cards, rnd)

		// Then: Each step swaps the tail with the head
		assert.Equal(t, []string{"b", "c", "d", "a"}, ids(shuffled))
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(cards), "input must stay untouched")
	})

	t.Run("Drawing the top index keeps the order", func(t *testing.T) {
		// Given: A source that always draws i, the largest allowed index
		rnd := &seqRand{values: []int{3, 2, 1}}

		// When: Shuffling
		shuffled := Shuffle(cards, rnd)

		// Then: Nothing moves
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(shuffled))
	})

	t.Run("Keeps the same cards", func(t *testing.T) {
		// When: Shuffling the universe with a seeded source
		shuffled := NewShuffler(NewRand(42)).NewDeck()

		// Then: It is a permutation of the universe
		assert.ElementsMatch(t, Universe(), shuffled)
	})
}

func TestDeal(t *testing.T) {
	t.Run("Moves cards from the top of the deck", func(t *testing.T) {
		// Given: A game with a full deck
		game := entity.NewGame("ABCD", 4, Universe())
		player := entity.NewPlayer("p1", "Alice", true)
		game.Players = append(game.Players, player)

		// When: Dealing a hand
		deal(game, player, entity.HandSize)

		// Then: The player holds the first six cards
		assert.Equal(t, []string{"001", "002", "003", "004", "005", "006"}, ids(player.Hand))
		assert.Len(t, game.Deck, DeckSize-entity.HandSize)
		assert.Equal(t, "007", game.Deck[0].ID)
	})

	t.Run("Deals nothing when the deck is short", func(t *testing.T) {
		// Given: A deck with fewer cards than requested
		game := entity.NewGame("ABCD", 4, Universe()[:3])
		player := entity.NewPlayer("p1", "Alice", true)
		game.Players = append(game.Players, player)

		// When: Dealing a hand
		deal(game, player, entity.HandSize)

		// Then: Neither the hand nor the deck changes
		assert.Empty(t, player.Hand)
		assert.Len(t, game.Deck, 3)
	})

	t.Run("Replenish tops up every hand", func(t *testing.T) {
		// Given: Two players holding partial hands
		game := entity.NewGame("ABCD", 4, Universe())
		alice := entity.NewPlayer("p1", "Alice", true)
		bob := entity.NewPlayer("p2", "Bob", false)
		game.Players = append(game.Players, alice, bob)
		deal(game, alice, 5)
		deal(game, bob, 2)

		// When: Replenishing
		replenish(game)

		// Then: Both hold a full hand
		assert.Len(t, alice.Hand, entity.HandSize)
		assert.Len(t, bob.Hand, entity.HandSize)
		assert.Len(t, game.Deck, DeckSize-2*entity.HandSize)
	})
}

func ids(cards []entity.Card) []string {
	out := make([]string, 0, len(cards))
	for _, card := range cards {
		out = append(out, card.ID)
	}

	return out
}
