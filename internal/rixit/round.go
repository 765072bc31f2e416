package rixit

import (
	"fmt"
	"strings"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
	"github.com/nachocoigodonnell/rixit/internal/entity"
)

// Every transition validates against game first and only then works on a
// clone, so a rejected intent leaves no trace and an accepted one never
// touches the snapshot it was given.

// StartRound moves the lobby to the first clue, with the host narrating.
func StartRound(game *entity.Game, actorID string) (*entity.Game, error) {
	if !game.IsLobby() {
		return nil, apperror.ErrGameAlreadyStarted
	}

	// a host who left keeps the id but not the seat
	if !game.IsSeated(actorID) {
		return nil, apperror.ErrNotInGame
	}

	if !game.IsHost(actorID) {
		return nil, apperror.ErrNotHost
	}

	if len(game.Players) < entity.MinPlayers {
		return nil, fmt.Errorf("%w: %d players", apperror.ErrNotEnoughPlayers, len(game.Players))
	}

	next := game.Clone()
	next.Stage = entity.StageClue
	next.Round = 1
	next.NarratorID = game.HostID
	next.Clue = ""
	next.Submissions = []entity.Submission{}
	next.Votes = []entity.Vote{}

	return next, nil
}

// SubmitClue records the narrator's clue and card and opens submissions.
func SubmitClue(game *entity.Game, actorID, clue, cardID string) (*entity.Game, error) {
	if err := game.ConfirmStage(entity.StageClue); err != nil {
		return nil, err
	}

	if !game.IsNarrator(actorID) {
		return nil, apperror.ErrNotNarrator
	}

	clue = strings.TrimSpace(clue)
	if clue == "" {
		return nil, apperror.ErrEmptyClue
	}

	narrator, _ := game.PlayerByID(actorID)
	if narrator == nil || !narrator.HasCard(cardID) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCardNotInHand, cardID)
	}

	next := game.Clone()
	narrator, _ = next.PlayerByID(actorID)
	narrator.TakeCard(cardID)

	next.Clue = clue
	next.Submissions = []entity.Submission{{PlayerID: actorID, CardID: cardID}}
	next.Votes = []entity.Vote{}
	next.Stage = entity.StageSubmit

	return next, nil
}

// SubmitCard plays a non-narrator's card. The last submission opens voting.
func SubmitCard(game *entity.Game, actorID, cardID string) (*entity.Game, error) {
	if err := game.ConfirmStage(entity.StageSubmit); err != nil {
		return nil, err
	}

	if game.IsNarrator(actorID) {
		return nil, apperror.ErrNarratorCannotAct
	}

	player, _ := game.PlayerByID(actorID)
	if player == nil {
		return nil, apperror.ErrNotInGame
	}

	if _, ok := game.SubmissionBy(actorID); ok {
		return nil, apperror.ErrAlreadySubmitted
	}

	if !player.HasCard(cardID) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCardNotInHand, cardID)
	}

	next := game.Clone()
	player, _ = next.PlayerByID(actorID)
	player.TakeCard(cardID)

	next.Submissions = append(next.Submissions, entity.Submission{PlayerID: actorID, CardID: cardID})
	if next.AllSubmitted() {
		next.Stage = entity.StageVote
	}

	return next, nil
}

// Vote records a non-narrator's guess. The last vote moves the game to reveal.
func Vote(game *entity.Game, voterID, cardID string) (*entity.Game, error) {
	// own card is rejected whatever else is wrong with the request
	if own, ok := game.SubmissionBy(voterID); ok && own.CardID == cardID {
		return nil, apperror.ErrOwnCard
	}

	if err := game.ConfirmStage(entity.StageVote); err != nil {
		return nil, err
	}

	if game.IsNarrator(voterID) {
		return nil, apperror.ErrNarratorCannotAct
	}

	if player, _ := game.PlayerByID(voterID); player == nil {
		return nil, apperror.ErrNotInGame
	}

	if _, ok := game.VoteBy(voterID); ok {
		return nil, apperror.ErrAlreadyVoted
	}

	if !game.HasSubmittedCard(cardID) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownCard, cardID)
	}

	next := game.Clone()
	next.Votes = append(next.Votes, entity.Vote{VoterID: voterID, CardID: cardID})
	if next.AllVoted() {
		next.Stage = entity.StageReveal
	}

	return next, nil
}

// Reveal scores the round, retires the played cards, passes narration to
// the next seat, refills hands and opens the next clue.
func Reveal(game *entity.Game) (*entity.Game, error) {
	if err := game.ConfirmStage(entity.StageReveal); err != nil {
		return nil, err
	}

	deltas := Score(game)

	next := game.Clone()
	for _, player := range next.Players {
		player.Score += deltas[player.ID]
	}

	next.LastRound = &entity.RoundResult{
		Round:          game.Round,
		NarratorID:     game.NarratorID,
		NarratorCardID: game.NarratorCardID(),
		Clue:           game.Clue,
		Submissions:    next.Submissions,
		Votes:          next.Votes,
		Deltas:         deltas,
	}

	for _, submission := range game.Submissions {
		next.Discard = append(next.Discard, entity.NewCard(submission.CardID))
	}

	next.NarratorID = game.NextNarratorID()
	next.Clue = ""
	next.Submissions = []entity.Submission{}
	next.Votes = []entity.Vote{}
	next.Round = game.Round + 1
	replenish(next)
	next.Stage = entity.StageClue

	return next, nil
}
