package rixit

import "github.com/nachocoigodonnell/rixit/internal/entity"

const (
	narratorPoints = 3
	guessPoints    = 3
	bonusPoints    = 2
	votePoints     = 1
)

// Score computes every player's delta for the round on the table. It reads
// game only; applying the deltas is up to the caller.
//
// When nobody or everybody finds the narrator's card the narrator scores
// nothing and every other player gets the bonus. Otherwise the
// narrator and every correct guesser score. Non-narrators also collect a
// point for each vote their own card attracted.
func Score(game *entity.Game) map[string]int {
	deltas := make(map[string]int, len(game.Players))
	for _, player := range game.Players {
		deltas[player.ID] = 0
	}

	narratorCard := game.NarratorCardID()
	if narratorCard == "" {
		return deltas
	}

	votesFor := make(map[string]int, len(game.Submissions))
	for _, vote := range game.Votes {
		votesFor[vote.CardID]++
	}

	nonNarratorCount := len(game.Players) - 1
	votesForNarrator := votesFor[narratorCard]
	unanimousOrNone := votesForNarrator == 0 || votesForNarrator == nonNarratorCount

	for _, player := range game.Players {
		if game.IsNarrator(player.ID) {
			if !unanimousOrNone {
				deltas[player.ID] += narratorPoints
			}
			continue
		}

		if vote, ok := game.VoteBy(player.ID); ok && vote.CardID == narratorCard {
			deltas[player.ID] += guessPoints
		}

		if unanimousOrNone {
			deltas[player.ID] += bonusPoints
		}

		if submission, ok := game.SubmissionBy(player.ID); ok {
			deltas[player.ID] += votesFor[submission.CardID] * votePoints
		}
	}

	return deltas
}
