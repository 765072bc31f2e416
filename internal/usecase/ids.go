package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nachocoigodonnell/rixit/internal/rixit"
)

const (
	gameCodeLength   = 4
	gameCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	playerIDPrefix   = "player-"
)

type IDGenerator interface {
	GameCode() string
	PlayerID() string
}

type randomIDs struct {
	rnd rixit.Rand
}

// NewRandomIDs draws game codes from rnd and player ids from uuid v4.
func NewRandomIDs(rnd rixit.Rand) IDGenerator {
	return &randomIDs{rnd: rnd}
}

func (that *randomIDs) GameCode() string {
	var code strings.Builder
	code.Grow(gameCodeLength)

	for range gameCodeLength {
		code.WriteByte(gameCodeAlphabet[that.rnd.Intn(len(gameCodeAlphabet))])
	}

	return code.String()
}

func (that *randomIDs) PlayerID() string {
	return playerIDPrefix + uuid.NewString()
}

// NormalizeCode makes lookups case-insensitive; codes are stored upper case.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
