package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"
)

type client struct {
	hub  *Hub
	conn *websocket.Conn

	gameCode string
	playerID string

	send chan Reply
}

func (that *client) readPump(ctx context.Context) {
	log := that.hub.logger.With("method", "readPump", "gameCode", that.gameCode, "playerID", that.playerID)

	defer that.conn.Close()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("socket closed unexpectedly", "error", err)
			}

			return
		}

		that.hub.dispatch(ctx, that, raw)
	}
}

func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case reply, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteJSON(reply); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					that.hub.logger.Debug("failed to write to socket", "playerID", that.playerID, "error", err)
				}

				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
