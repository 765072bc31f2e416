package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
	"github.com/nachocoigodonnell/rixit/internal/entity"
	"github.com/nachocoigodonnell/rixit/transport/snapshot"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

type gameUseCase interface {
	GetGame(ctx context.Context, code string) (*entity.Game, error)
	LeaveGame(ctx context.Context, code, playerID string) (*entity.Game, error)

	StartRound(ctx context.Context, code, actorID string) (*entity.Game, error)
	SubmitClue(ctx context.Context, code, actorID, clue, cardID string) (*entity.Game, error)
	SubmitCard(ctx context.Context, code, actorID, cardID string) (*entity.Game, error)
	VoteCard(ctx context.Context, code, actorID, cardID string) (*entity.Game, error)
	RevealRound(ctx context.Context, code string) (*entity.Game, error)
}

type intentHandler func(ctx context.Context, c *client, payload intentPayload) (*entity.Game, error)

// Hub keeps the open sockets of every game and pushes each of them its own
// view whenever the game changes.
type Hub struct {
	logger   *slog.Logger
	games    gameUseCase
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}

	handlers map[string]intentHandler
}

func NewHub(logger *slog.Logger, games gameUseCase) *Hub {
	hub := &Hub{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		rooms: make(map[string]map[*client]struct{}),
	}

	hub.handlers = map[string]intentHandler{
		ActionStart:  hub.handleStart,
		ActionClue:   hub.handleClue,
		ActionSubmit: hub.handleSubmit,
		ActionVote:   hub.handleVote,
		ActionReveal: hub.handleReveal,
		ActionLeave:  hub.handleLeave,
	}

	return hub
}

// Serve upgrades the request and blocks until the socket closes. The caller
// has already authenticated playerID for gameCode.
func (that *Hub) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, gameCode, playerID string) error {
	log := that.logger.With("method", "Serve", "gameCode", gameCode, "playerID", playerID)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	c := &client{
		hub:      that,
		conn:     conn,
		gameCode: gameCode,
		playerID: playerID,
		send:     make(chan Reply, sendBuffer),
	}

	that.register(c)
	log.Info("socket connected")

	go c.writePump()

	if game, err := that.games.GetGame(ctx, gameCode); err == nil {
		that.deliver(c, updateFor(game, playerID))
	}

	c.readPump(ctx)

	that.unregister(c)
	log.Info("socket disconnected")

	return nil
}

// Broadcast pushes the snapshot to every socket of the game. Sockets of
// players who are no longer seated get this last update and are then closed.
func (that *Hub) Broadcast(game *entity.Game) {
	var departed []*client

	that.mu.RLock()
	for c := range that.rooms[game.Code] {
		that.enqueue(c, updateFor(game, c.playerID))

		if !game.IsSeated(c.playerID) {
			departed = append(departed, c)
		}
	}
	that.mu.RUnlock()

	for _, c := range departed {
		that.logger.Info("closing socket of departed player", "gameCode", c.gameCode, "playerID", c.playerID)
		that.unregister(c)
	}
}

// Subscribers reports how many sockets follow the game.
func (that *Hub) Subscribers(gameCode string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms[gameCode])
}

// Shutdown closes every socket; their Serve calls return shortly after.
func (that *Hub) Shutdown() {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, room := range that.rooms {
		for c := range room {
			_ = c.conn.Close()
		}
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[c.gameCode]
	if !ok {
		room = make(map[*client]struct{})
		that.rooms[c.gameCode] = room
	}

	room[c] = struct{}{}
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room := that.rooms[c.gameCode]
	if _, ok := room[c]; !ok {
		return
	}

	delete(room, c)
	close(c.send)

	if len(room) == 0 {
		delete(that.rooms, c.gameCode)
	}
}

func (that *Hub) deliver(c *client, reply Reply) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if _, ok := that.rooms[c.gameCode][c]; ok {
		that.enqueue(c, reply)
	}
}

// enqueue must run under mu. A client that cannot keep up is disconnected.
func (that *Hub) enqueue(c *client, reply Reply) {
	select {
	case c.send <- reply:
	default:
		that.logger.Warn("socket too slow, closing", "gameCode", c.gameCode, "playerID", c.playerID)
		_ = c.conn.Close()
	}
}

// dispatch runs one client message. Accepted intents are broadcast to the
// whole game, rejected ones are answered to the sender only.
func (that *Hub) dispatch(ctx context.Context, c *client, raw []byte) {
	log := that.logger.With("method", "dispatch", "gameCode", c.gameCode, "playerID", c.playerID)

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		that.deliver(c, errorReply("", fmt.Errorf("%w: malformed message", apperror.ErrInvalidInput)))
		return
	}

	if msg.Action == ActionState {
		game, err := that.games.GetGame(ctx, c.gameCode)
		if err != nil {
			that.deliver(c, errorReply(msg.Action, err))
			return
		}

		that.deliver(c, updateFor(game, c.playerID))

		return
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		that.deliver(c, errorReply(msg.Action, fmt.Errorf("%w: unknown action %q", apperror.ErrInvalidInput, msg.Action)))
		return
	}

	var payload intentPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			that.deliver(c, errorReply(msg.Action, fmt.Errorf("%w: malformed payload", apperror.ErrInvalidInput)))
			return
		}
	}

	game, err := handler(ctx, c, payload)
	if err != nil {
		if apperror.Kind(err) == apperror.KindInternal {
			log.Error("intent failed", "action", msg.Action, "error", err)
		}

		that.deliver(c, errorReply(msg.Action, err))

		return
	}

	that.Broadcast(game)
}

func (that *Hub) handleStart(ctx context.Context, c *client, _ intentPayload) (*entity.Game, error) {
	return that.games.StartRound(ctx, c.gameCode, c.playerID)
}

func (that *Hub) handleClue(ctx context.Context, c *client, payload intentPayload) (*entity.Game, error) {
	return that.games.SubmitClue(ctx, c.gameCode, c.playerID, payload.Clue, payload.CardID)
}

func (that *Hub) handleSubmit(ctx context.Context, c *client, payload intentPayload) (*entity.Game, error) {
	return that.games.SubmitCard(ctx, c.gameCode, c.playerID, payload.CardID)
}

func (that *Hub) handleVote(ctx context.Context, c *client, payload intentPayload) (*entity.Game, error) {
	return that.games.VoteCard(ctx, c.gameCode, c.playerID, payload.CardID)
}

func (that *Hub) handleReveal(ctx context.Context, c *client, _ intentPayload) (*entity.Game, error) {
	game, err := that.games.GetGame(ctx, c.gameCode)
	if err != nil {
		return nil, err
	}

	if !game.IsSeated(c.playerID) {
		return nil, apperror.ErrNotInGame
	}

	return that.games.RevealRound(ctx, c.gameCode)
}

func (that *Hub) handleLeave(ctx context.Context, c *client, _ intentPayload) (*entity.Game, error) {
	return that.games.LeaveGame(ctx, c.gameCode, c.playerID)
}

func updateFor(game *entity.Game, playerID string) Reply {
	return Reply{
		Action:  ActionGameUpdate,
		Payload: snapshot.For(game, playerID),
	}
}
