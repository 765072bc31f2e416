package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every concrete error below wraps exactly one of them, so callers
// can classify with errors.Is(err, ErrForbidden) and friends.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidStage       = errors.New("invalid stage")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthorized       = errors.New("unauthorized")
)

var (
	ErrGameNotFound = fmt.Errorf("%w: game not found", ErrNotFound)

	ErrGameAlreadyStarted = fmt.Errorf("%w: game already in progress", ErrInvalidStage)
	ErrWrongStage         = fmt.Errorf("%w: action not allowed in current stage", ErrInvalidStage)

	ErrNotHost           = fmt.Errorf("%w: only the host can do this", ErrForbidden)
	ErrNotNarrator       = fmt.Errorf("%w: not the narrator", ErrForbidden)
	ErrNarratorCannotAct = fmt.Errorf("%w: narrator cannot submit or vote", ErrForbidden)
	ErrNotInGame         = fmt.Errorf("%w: player is not in this game", ErrForbidden)

	ErrNameTaken         = fmt.Errorf("%w: player name already taken", ErrConflict)
	ErrGameFull          = fmt.Errorf("%w: game is full", ErrConflict)
	ErrAlreadySubmitted  = fmt.Errorf("%w: already submitted", ErrConflict)
	ErrAlreadyVoted      = fmt.Errorf("%w: already voted", ErrConflict)
	ErrGameAlreadyExists = fmt.Errorf("%w: game already exists", ErrConflict)

	ErrCardNotInHand      = fmt.Errorf("%w: card not in hand", ErrInvalidInput)
	ErrUnknownCard        = fmt.Errorf("%w: card is not among this round's submissions", ErrInvalidInput)
	ErrOwnCard            = fmt.Errorf("%w: cannot vote for your own card", ErrInvalidInput)
	ErrInvalidName        = fmt.Errorf("%w: player name must be 3-15 characters", ErrInvalidInput)
	ErrEmptyClue          = fmt.Errorf("%w: clue is required", ErrInvalidInput)
	ErrInvalidPlayerCount = fmt.Errorf("%w: invalid player count", ErrInvalidInput)

	ErrNotEnoughPlayers = fmt.Errorf("%w: minimum 3 players required", ErrPreconditionFailed)

	ErrInvalidToken = fmt.Errorf("%w: invalid access token", ErrUnauthorized)
)

const (
	KindNotFound           = "not_found"
	KindInvalidStage       = "invalid_stage"
	KindForbidden          = "forbidden"
	KindConflict           = "conflict"
	KindInvalidInput       = "invalid_input"
	KindPreconditionFailed = "precondition_failed"
	KindUnauthorized       = "unauthorized"
	KindInternal           = "internal"
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNotFound, KindNotFound},
	{ErrInvalidStage, KindInvalidStage},
	{ErrForbidden, KindForbidden},
	{ErrConflict, KindConflict},
	{ErrInvalidInput, KindInvalidInput},
	{ErrPreconditionFailed, KindPreconditionFailed},
	{ErrUnauthorized, KindUnauthorized},
}

// Kind returns the machine-readable kind of err, or KindInternal when err
// does not wrap any of the known kinds.
func Kind(err error) string {
	for _, kind := range kinds {
		if errors.Is(err, kind.err) {
			return kind.name
		}
	}

	return KindInternal
}

// HTTPStatus maps err to the status code transports answer with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidStage, KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
