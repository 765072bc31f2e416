package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nachocoigodonnell/rixit/internal/entity"
	"github.com/nachocoigodonnell/rixit/internal/service"
	"github.com/nachocoigodonnell/rixit/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type authService interface {
	GenerateToken(gameCode, playerID string) (string, error)
	ParseToken(token string) (*service.PlayerClaims, error)
}

type gameHub interface {
	Broadcast(game *entity.Game)
	Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, gameCode, playerID string) error
}

type Server struct {
	logger *slog.Logger

	games usecase.GameUseCase
	auth  authService
	hub   gameHub

	router *gin.Engine
}

func New(logger *slog.Logger, games usecase.GameUseCase, auth authService, hub gameHub, allowedOrigins []string) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),

		games: games,
		auth:  auth,
		hub:   hub,
	}

	server.router = server.routes(allowedOrigins)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start serves until ctx is done, then drains in-flight requests.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (that *Server) routes(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), that.requestLogger())

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.GET("/ping", that.ping)
	router.GET("/ws/:code", that.socket)

	games := router.Group("/games")
	{
		games.POST("/create", that.createGame)
		games.POST("/:code/join", that.joinGame)
		games.GET("/code/:code", that.getGame)

		seated := games.Group("/:code", that.requirePlayer)
		{
			seated.POST("/start", that.startRound)
			seated.POST("/clue", that.submitClue)
			seated.POST("/submit", that.submitCard)
			seated.POST("/vote", that.voteCard)
			seated.POST("/reveal", that.revealRound)
			seated.POST("/leave", that.leaveGame)
		}
	}

	return router
}

func (that *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		that.logger.Debug("request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
