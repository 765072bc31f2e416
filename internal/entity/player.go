package entity

import "slices"

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Hand   []Card `json:"hand"`
	Score  int    `json:"score"`
	IsHost bool   `json:"isHost"`
}

func NewPlayer(id, name string, isHost bool) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Hand:   []Card{},
		IsHost: isHost,
	}
}

// HandIndex returns the position of cardID in the hand, or -1.
func (that *Player) HandIndex(cardID string) int {
	return slices.IndexFunc(that.Hand, func(card Card) bool {
		return card.ID == cardID
	})
}

func (that *Player) HasCard(cardID string) bool {
	return that.HandIndex(cardID) >= 0
}

// TakeCard removes cardID from the hand and reports whether it was there.
func (that *Player) TakeCard(cardID string) (Card, bool) {
	idx := that.HandIndex(cardID)
	if idx < 0 {
		return Card{}, false
	}

	card := that.Hand[idx]
	that.Hand = slices.Delete(that.Hand, idx, idx+1)

	return card, true
}

func (that *Player) clone() *Player {
	cp := *that
	cp.Hand = slices.Clone(that.Hand)

	return &cp
}
