package entity

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
)

type Stage string

const (
	StageLobby  Stage = "lobby"
	StageClue   Stage = "clue"
	StageSubmit Stage = "submit"
	StageVote   Stage = "vote"
	StageReveal Stage = "reveal"
)

const (
	HandSize   = 6
	MinPlayers = 3
)

type Submission struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
}

type Vote struct {
	VoterID string `json:"voterId"`
	CardID  string `json:"cardId"`
}

// RoundResult keeps what was on the table when a round was scored.
type RoundResult struct {
	Round          int            `json:"round"`
	NarratorID     string         `json:"narratorId"`
	NarratorCardID string         `json:"narratorCardId"`
	Clue           string         `json:"clue"`
	Submissions    []Submission   `json:"submissions"`
	Votes          []Vote         `json:"votes"`
	Deltas         map[string]int `json:"deltas"`
}

// Game is a snapshot. Transitions never modify a Game that has been handed
// out; they work on a Clone.
type Game struct {
	Code        string       `json:"code"`
	HostID      string       `json:"hostId"`
	MaxPlayers  int          `json:"maxPlayers"`
	Players     []*Player    `json:"players"`
	Deck        []Card       `json:"deck"`
	Discard     []Card       `json:"discard"`
	Round       int          `json:"round"`
	Stage       Stage        `json:"stage"`
	NarratorID  string       `json:"narratorId"`
	Clue        string       `json:"clue"`
	Submissions []Submission `json:"submissions"`
	Votes       []Vote       `json:"votes"`
	LastRound   *RoundResult `json:"lastRound,omitempty"`
}

func NewGame(code string, maxPlayers int, deck []Card) *Game {
	return &Game{
		Code:        code,
		MaxPlayers:  maxPlayers,
		Players:     []*Player{},
		Deck:        deck,
		Discard:     []Card{},
		Stage:       StageLobby,
		Submissions: []Submission{},
		Votes:       []Vote{},
	}
}

// Clone returns a deep copy that shares no mutable state with the receiver.
func (that *Game) Clone() *Game {
	cp := *that

	cp.Players = make([]*Player, len(that.Players))
	for i, player := range that.Players {
		cp.Players[i] = player.clone()
	}

	cp.Deck = slices.Clone(that.Deck)
	cp.Discard = slices.Clone(that.Discard)
	cp.Submissions = slices.Clone(that.Submissions)
	cp.Votes = slices.Clone(that.Votes)

	if that.LastRound != nil {
		last := *that.LastRound
		last.Submissions = slices.Clone(that.LastRound.Submissions)
		last.Votes = slices.Clone(that.LastRound.Votes)
		last.Deltas = maps.Clone(that.LastRound.Deltas)
		cp.LastRound = &last
	}

	return &cp
}

// PlayerByID returns the player and its seat index, or nil and -1.
func (that *Game) PlayerByID(id string) (*Player, int) {
	for i, player := range that.Players {
		if player.ID == id {
			return player, i
		}
	}

	return nil, -1
}

func (that *Game) IsSeated(playerID string) bool {
	player, _ := that.PlayerByID(playerID)

	return player != nil
}

func (that *Game) HasPlayerNamed(name string) bool {
	return slices.ContainsFunc(that.Players, func(player *Player) bool {
		return strings.EqualFold(player.Name, name)
	})
}

func (that *Game) IsFull() bool {
	return that.MaxPlayers > 0 && len(that.Players) >= that.MaxPlayers
}

func (that *Game) IsLobby() bool {
	return that.Stage == StageLobby
}

func (that *Game) IsHost(playerID string) bool {
	return playerID != "" && that.HostID == playerID
}

func (that *Game) IsNarrator(playerID string) bool {
	return that.NarratorID != "" && that.NarratorID == playerID
}

// ConfirmStage returns an InvalidStage error unless the game is in stage.
func (that *Game) ConfirmStage(stage Stage) error {
	if that.Stage != stage {
		return fmt.Errorf("%w: expected %s, game is in %s", apperror.ErrWrongStage, stage, that.Stage)
	}

	return nil
}

func (that *Game) SubmissionBy(playerID string) (Submission, bool) {
	for _, submission := range that.Submissions {
		if submission.PlayerID == playerID {
			return submission, true
		}
	}

	return Submission{}, false
}

func (that *Game) HasSubmittedCard(cardID string) bool {
	return slices.ContainsFunc(that.Submissions, func(submission Submission) bool {
		return submission.CardID == cardID
	})
}

func (that *Game) VoteBy(voterID string) (Vote, bool) {
	for _, vote := range that.Votes {
		if vote.VoterID == voterID {
			return vote, true
		}
	}

	return Vote{}, false
}

// NarratorCardID is the card the narrator played this round, empty before the clue.
func (that *Game) NarratorCardID() string {
	submission, ok := that.SubmissionBy(that.NarratorID)
	if !ok {
		return ""
	}

	return submission.CardID
}

// NextNarratorID returns the player seated after the current narrator,
// wrapping around the table.
func (that *Game) NextNarratorID() string {
	if len(that.Players) == 0 {
		return ""
	}

	_, idx := that.PlayerByID(that.NarratorID)

	return that.Players[(idx+1)%len(that.Players)].ID
}

func (that *Game) AllSubmitted() bool {
	return len(that.Submissions) == len(that.Players)
}

func (that *Game) AllVoted() bool {
	return len(that.Votes) == len(that.Players)-1
}
