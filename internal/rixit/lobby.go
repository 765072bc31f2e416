package rixit

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
	"github.com/nachocoigodonnell/rixit/internal/entity"
)

const (
	minNameLength = 3
	maxNameLength = 15

	MaxPlayers = 12
)

// CreateGame opens a lobby around deck with the host seated and dealt a hand.
func CreateGame(code, hostID, hostName string, playerCount int, deck []entity.Card) (*entity.Game, error) {
	name, err := validateName(hostName)
	if err != nil {
		return nil, err
	}

	if playerCount < entity.MinPlayers || playerCount > MaxPlayers {
		return nil, fmt.Errorf("%w: %d, must be between %d and %d", apperror.ErrInvalidPlayerCount, playerCount, entity.MinPlayers, MaxPlayers)
	}

	game := entity.NewGame(code, playerCount, slices.Clone(deck))
	game.HostID = hostID

	host := entity.NewPlayer(hostID, name, true)
	game.Players = append(game.Players, host)
	deal(game, host, entity.HandSize)

	return game, nil
}

// Join seats a new player in the lobby and deals their hand.
func Join(game *entity.Game, playerID, playerName string) (*entity.Game, error) {
	if !game.IsLobby() {
		return nil, apperror.ErrGameAlreadyStarted
	}

	name, err := validateName(playerName)
	if err != nil {
		return nil, err
	}

	if game.HasPlayerNamed(name) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrNameTaken, name)
	}

	if game.IsFull() {
		return nil, fmt.Errorf("%w: %d players", apperror.ErrGameFull, game.MaxPlayers)
	}

	next := game.Clone()

	player := entity.NewPlayer(playerID, name, false)
	next.Players = append(next.Players, player)
	deal(next, player, entity.HandSize)

	return next, nil
}

// Leave removes a player. Their hand and any card they played go to the
// discard. If the narrator leaves, or the table drops below the minimum,
// the current round is called off.
func Leave(game *entity.Game, playerID string) (*entity.Game, error) {
	_, idx := game.PlayerByID(playerID)
	if idx < 0 {
		return nil, apperror.ErrNotInGame
	}

	next := game.Clone()
	leaver := next.Players[idx]
	next.Discard = append(next.Discard, leaver.Hand...)
	next.Players = slices.Delete(next.Players, idx, idx+1)

	if next.IsLobby() || len(next.Players) == 0 {
		return next, nil
	}

	if next.IsNarrator(playerID) || len(next.Players) < entity.MinPlayers {
		cancelRound(next, idx)
		return next, nil
	}

	if submission, ok := next.SubmissionBy(playerID); ok {
		next.Discard = append(next.Discard, entity.NewCard(submission.CardID))
		next.Submissions = slices.DeleteFunc(next.Submissions, func(s entity.Submission) bool {
			return s.PlayerID == playerID
		})
		// whoever picked the leaver's card votes again
		next.Votes = slices.DeleteFunc(next.Votes, func(v entity.Vote) bool {
			return v.CardID == submission.CardID
		})
	}

	next.Votes = slices.DeleteFunc(next.Votes, func(v entity.Vote) bool {
		return v.VoterID == playerID
	})

	settle(next)

	return next, nil
}

// cancelRound discards everything played this round. The seat that followed
// the leaver (now at seat) narrates next, unless the table is too small to
// play, in which case the game returns to the lobby.
func cancelRound(game *entity.Game, seat int) {
	for _, submission := range game.Submissions {
		game.Discard = append(game.Discard, entity.NewCard(submission.CardID))
	}

	game.Clue = ""
	game.Submissions = []entity.Submission{}
	game.Votes = []entity.Vote{}

	if len(game.Players) < entity.MinPlayers {
		game.Stage = entity.StageLobby
		game.NarratorID = ""
		return
	}

	game.NarratorID = game.Players[seat%len(game.Players)].ID
	game.Stage = entity.StageClue
	replenish(game)
}

// settle re-evaluates stage completion after the table shrank.
func settle(game *entity.Game) {
	switch game.Stage {
	case entity.StageSubmit:
		if game.AllSubmitted() {
			game.Stage = entity.StageVote
		}
	case entity.StageVote, entity.StageReveal:
		if game.AllVoted() {
			game.Stage = entity.StageReveal
		} else {
			game.Stage = entity.StageVote
		}
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)

	length := utf8.RuneCountInString(name)
	if length < minNameLength || length > maxNameLength {
		return "", apperror.ErrInvalidName
	}

	return name, nil
}
