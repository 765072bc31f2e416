// Package snapshot renders a game the way one player is allowed to see it.
package snapshot

import (
	"slices"
	"strings"

	"github.com/nachocoigodonnell/rixit/internal/entity"
)

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsHost    bool   `json:"isHost"`
	HandSize  int    `json:"handSize"`
	Submitted bool   `json:"submitted"`
	Voted     bool   `json:"voted"`
}

// Game hides other players' hands and, until reveal, who played which card.
type Game struct {
	Code        string              `json:"code"`
	HostID      string              `json:"hostId"`
	MaxPlayers  int                 `json:"maxPlayers"`
	Players     []Player            `json:"players"`
	Round       int                 `json:"round"`
	Stage       entity.Stage        `json:"stage"`
	NarratorID  string              `json:"narratorId"`
	Clue        string              `json:"clue"`
	Candidates  []entity.Card       `json:"candidates"`
	Submissions []entity.Submission `json:"submissions,omitempty"`
	Votes       []entity.Vote       `json:"votes,omitempty"`
	DeckSize    int                 `json:"deckSize"`
	DiscardSize int                 `json:"discardSize"`
	LastRound   *entity.RoundResult `json:"lastRound,omitempty"`
	MyHand      []entity.Card       `json:"myHand"`
	MyCardID    string              `json:"myCardId,omitempty"`
	MyVote      string              `json:"myVote,omitempty"`
}

// For builds viewerID's view of game. An empty or unknown viewer gets the
// public view with an empty hand.
func For(game *entity.Game, viewerID string) *Game {
	view := &Game{
		Code:        game.Code,
		HostID:      game.HostID,
		MaxPlayers:  game.MaxPlayers,
		Players:     make([]Player, 0, len(game.Players)),
		Round:       game.Round,
		Stage:       game.Stage,
		NarratorID:  game.NarratorID,
		Clue:        game.Clue,
		Candidates:  []entity.Card{},
		DeckSize:    len(game.Deck),
		DiscardSize: len(game.Discard),
		LastRound:   game.LastRound,
		MyHand:      []entity.Card{},
	}

	for _, player := range game.Players {
		_, submitted := game.SubmissionBy(player.ID)
		_, voted := game.VoteBy(player.ID)

		view.Players = append(view.Players, Player{
			ID:        player.ID,
			Name:      player.Name,
			Score:     player.Score,
			IsHost:    player.IsHost,
			HandSize:  len(player.Hand),
			Submitted: submitted,
			Voted:     voted,
		})

		if player.ID == viewerID {
			view.MyHand = slices.Clone(player.Hand)
		}
	}

	if submission, ok := game.SubmissionBy(viewerID); ok {
		view.MyCardID = submission.CardID
	}

	if vote, ok := game.VoteBy(viewerID); ok {
		view.MyVote = vote.CardID
	}

	if game.Stage == entity.StageVote || game.Stage == entity.StageReveal {
		for _, submission := range game.Submissions {
			view.Candidates = append(view.Candidates, entity.NewCard(submission.CardID))
		}

		// id order says nothing about who played what
		slices.SortFunc(view.Candidates, func(a, b entity.Card) int {
			return strings.Compare(a.ID, b.ID)
		})
	}

	if game.Stage == entity.StageReveal {
		view.Submissions = slices.Clone(game.Submissions)
		view.Votes = slices.Clone(game.Votes)
	}

	return view
}
