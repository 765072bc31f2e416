package rixit

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/nachocoigodonnell/rixit/internal/entity"
)

const DeckSize = 60

// Rand is the randomness the engine needs. *math/rand.Rand satisfies it;
// tests supply fixed sequences.
type Rand interface {
	Intn(n int) int
}

// universe is built once per process; games get shuffled copies.
var universe = buildUniverse()

func buildUniverse() []entity.Card {
	cards := make([]entity.Card, 0, DeckSize)
	for i := 1; i <= DeckSize; i++ {
		cards = append(cards, entity.NewCard(fmt.Sprintf("%03d", i)))
	}

	return cards
}

// Universe returns the full card set in id order.
func Universe() []entity.Card {
	return slices.Clone(universe)
}

// Shuffle returns a Fisher-Yates shuffled copy of cards.
func Shuffle(cards []entity.Card, rnd Rand) []entity.Card {
	shuffled := slices.Clone(cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// Shuffler hands every new game its own shuffled deck.
type Shuffler struct {
	rnd Rand
}

func NewShuffler(rnd Rand) *Shuffler {
	return &Shuffler{rnd: rnd}
}

func (that *Shuffler) NewDeck() []entity.Card {
	return Shuffle(Universe(), that.rnd)
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRand returns a seeded Rand that is safe for concurrent use.
func NewRand(seed int64) Rand {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))} //nolint: gosec // game shuffling, not crypto
}

func (that *lockedRand) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

// deal moves count cards from the front of the deck into the player's hand.
// When the deck cannot cover the whole deal nothing is dealt.
func deal(game *entity.Game, player *entity.Player, count int) {
	if count <= 0 || len(game.Deck) < count {
		return
	}

	player.Hand = append(player.Hand, game.Deck[:count]...)
	game.Deck = slices.Clone(game.Deck[count:])
}

// replenish tops every hand up to entity.HandSize.
func replenish(game *entity.Game) {
	for _, player := range game.Players {
		deal(game, player, entity.HandSize-len(player.Hand))
	}
}
