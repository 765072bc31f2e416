package websocket

import (
	"encoding/json"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
)

const (
	ActionGameUpdate = "game_update"
	ActionError      = "error"

	ActionState  = "game:state"
	ActionStart  = "game:start"
	ActionClue   = "game:clue"
	ActionSubmit = "game:submit"
	ActionVote   = "game:vote"
	ActionReveal = "game:reveal"
	ActionLeave  = "game:leave"
)

// Message is what clients send: an action and its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Reply is what the server pushes back.
type Reply struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

type intentPayload struct {
	Clue   string `json:"clue"`
	CardID string `json:"cardId"`
}

type ErrorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
	Kind   string `json:"kind"`
}

func errorReply(action string, err error) Reply {
	kind := apperror.Kind(err)

	message := err.Error()
	if kind == apperror.KindInternal {
		message = "internal error"
	}

	return Reply{
		Action: ActionError,
		Payload: ErrorPayload{
			Action: action,
			Error:  message,
			Kind:   kind,
		},
	}
}
