package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
	"github.com/nachocoigodonnell/rixit/internal/entity"
	"github.com/nachocoigodonnell/rixit/internal/usecase"
	"github.com/nachocoigodonnell/rixit/transport/snapshot"
)

const (
	playerIDKey  = "playerID"
	bearerPrefix = "Bearer "
)

var errMissingToken = fmt.Errorf("%w: missing bearer token", apperror.ErrUnauthorized)

type createGameRequest struct {
	PlayerName  string `json:"playerName" binding:"required"`
	PlayerCount int    `json:"playerCount" binding:"required"`
}

type joinGameRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
}

type clueRequest struct {
	Clue   string `json:"clue" binding:"required"`
	CardID string `json:"cardId" binding:"required"`
}

type cardRequest struct {
	CardID string `json:"cardId" binding:"required"`
}

type seatResponse struct {
	GameCode    string         `json:"gameCode"`
	PlayerID    string         `json:"playerId"`
	AccessToken string         `json:"accessToken"`
	Game        *snapshot.Game `json:"game"`
}

type gameResponse struct {
	Game *snapshot.Game `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (that *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *Server) createGame(c *gin.Context) {
	var req createGameRequest
	if !that.bind(c, &req) {
		return
	}

	game, playerID, err := that.games.CreateGame(c.Request.Context(), req.PlayerName, req.PlayerCount)
	if err != nil {
		that.abortWithError(c, err)
		return
	}

	that.respondSeat(c, http.StatusCreated, game, playerID)
}

func (that *Server) joinGame(c *gin.Context) {
	var req joinGameRequest
	if !that.bind(c, &req) {
		return
	}

	game, playerID, err := that.games.JoinGame(c.Request.Context(), c.Param("code"), req.PlayerName)
	if err != nil {
		that.abortWithError(c, err)
		return
	}

	that.hub.Broadcast(game)
	that.respondSeat(c, http.StatusOK, game, playerID)
}

// getGame is open to anyone holding the code. A valid token for the game
// adds the caller's hand to the view.
func (that *Server) getGame(c *gin.Context) {
	code := c.Param("code")

	var viewerID string
	if header := c.GetHeader("Authorization"); header != "" {
		playerID, err := that.playerFromHeader(header, code)
		if err != nil {
			that.abortWithError(c, err)
			return
		}

		viewerID = playerID
	}

	game, err := that.games.GetGame(c.Request.Context(), code)
	if err != nil {
		that.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gameResponse{Game: snapshot.For(game, viewerID)})
}

func (that *Server) startRound(c *gin.Context) {
	that.apply(c, func(playerID string) (*entity.Game, error) {
		return that.games.StartRound(c.Request.Context(), c.Param("code"), playerID)
	})
}

func (that *Server) submitClue(c *gin.Context) {
	var req clueRequest
	if !that.bind(c, &req) {
		return
	}

	that.apply(c, func(playerID string) (*entity.Game, error) {
		return that.games.SubmitClue(c.Request.Context(), c.Param("code"), playerID, req.Clue, req.CardID)
	})
}

func (that *Server) submitCard(c *gin.Context) {
	var req cardRequest
	if !that.bind(c, &req) {
		return
	}

	that.apply(c, func(playerID string) (*entity.Game, error) {
		return that.games.SubmitCard(c.Request.Context(), c.Param("code"), playerID, req.CardID)
	})
}

func (that *Server) voteCard(c *gin.Context) {
	var req cardRequest
	if !that.bind(c, &req) {
		return
	}

	that.apply(c, func(playerID string) (*entity.Game, error) {
		return that.games.VoteCard(c.Request.Context(), c.Param("code"), playerID, req.CardID)
	})
}

func (that *Server) revealRound(c *gin.Context) {
	that.apply(c, func(_ string) (*entity.Game, error) {
		return that.games.RevealRound(c.Request.Context(), c.Param("code"))
	})
}

func (that *Server) leaveGame(c *gin.Context) {
	that.apply(c, func(playerID string) (*entity.Game, error) {
		return that.games.LeaveGame(c.Request.Context(), c.Param("code"), playerID)
	})
}

// socket authenticates with the token query parameter, since browsers cannot
// set headers on a websocket handshake.
func (that *Server) socket(c *gin.Context) {
	log := that.logger.With("method", "socket")

	code := usecase.NormalizeCode(c.Param("code"))

	playerID, err := that.playerFromToken(c.Query("token"), code)
	if err != nil {
		that.abortWithError(c, err)
		return
	}

	if err = that.requireSeat(c.Request.Context(), code, playerID); err != nil {
		that.abortWithError(c, err)
		return
	}

	if err = that.hub.Serve(c.Request.Context(), c.Writer, c.Request, code, playerID); err != nil {
		log.Warn("websocket session failed", "gameCode", code, "playerID", playerID, "error", err)
	}
}

// requirePlayer admits requests carrying a token issued for the game in the
// path, from a player who still has a seat in it.
func (that *Server) requirePlayer(c *gin.Context) {
	playerID, err := that.playerFromHeader(c.GetHeader("Authorization"), c.Param("code"))
	if err != nil {
		that.abortWithError(c, err)
		return
	}

	if err = that.requireSeat(c.Request.Context(), c.Param("code"), playerID); err != nil {
		that.abortWithError(c, err)
		return
	}

	c.Set(playerIDKey, playerID)
	c.Next()
}

// requireSeat rejects tokens of players who have left; they stay valid
// until they expire.
func (that *Server) requireSeat(ctx context.Context, code, playerID string) error {
	game, err := that.games.GetGame(ctx, code)
	if err != nil {
		return err
	}

	if !game.IsSeated(playerID) {
		return apperror.ErrNotInGame
	}

	return nil
}

func (that *Server) playerFromHeader(header, code string) (string, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", errMissingToken
	}

	return that.playerFromToken(token, code)
}

func (that *Server) playerFromToken(token, code string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}

	claims, err := that.auth.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.GameCode != usecase.NormalizeCode(code) {
		return "", apperror.ErrNotInGame
	}

	return claims.Subject, nil
}

// apply runs a seated player's intent, then fans the new snapshot out.
func (that *Server) apply(c *gin.Context, intent func(playerID string) (*entity.Game, error)) {
	playerID := c.GetString(playerIDKey)

	game, err := intent(playerID)
	if err != nil {
		that.abortWithError(c, err)
		return
	}

	that.hub.Broadcast(game)
	c.JSON(http.StatusOK, gameResponse{Game: snapshot.For(game, playerID)})
}

func (that *Server) respondSeat(c *gin.Context, status int, game *entity.Game, playerID string) {
	token, err := that.auth.GenerateToken(game.Code, playerID)
	if err != nil {
		that.abortWithError(c, err)
		return
	}

	c.JSON(status, seatResponse{
		GameCode:    game.Code,
		PlayerID:    playerID,
		AccessToken: token,
		Game:        snapshot.For(game, playerID),
	})
}

func (that *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		that.abortWithError(c, fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err))
		return false
	}

	return true
}

func (that *Server) abortWithError(c *gin.Context, err error) {
	kind := apperror.Kind(err)
	status := apperror.HTTPStatus(err)

	message := err.Error()
	if kind == apperror.KindInternal {
		that.logger.Error("request failed", "path", c.FullPath(), "error", err)
		message = http.StatusText(status)
	} else {
		that.logger.Debug("request rejected", "path", c.FullPath(), "kind", kind, "error", err)
	}

	if errors.Is(err, apperror.ErrUnauthorized) {
		c.Header("WWW-Authenticate", "Bearer")
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: message, Kind: kind})
}
