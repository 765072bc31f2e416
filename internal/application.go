package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nachocoigodonnell/rixit/internal/config"
	"github.com/nachocoigodonnell/rixit/internal/repository"
	"github.com/nachocoigodonnell/rixit/internal/repository/storage"
	"github.com/nachocoigodonnell/rixit/internal/rixit"
	"github.com/nachocoigodonnell/rixit/internal/service"
	"github.com/nachocoigodonnell/rixit/internal/usecase"
	"github.com/nachocoigodonnell/rixit/transport/rest"
	"github.com/nachocoigodonnell/rixit/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage backend")
	ErrNoSecretKey    = errors.New("jwt secret key is empty")
)

// RunApp - wires storage, game manager and transports, then serves until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	if conf.JWTSecretKey == "" {
		return ErrNoSecretKey
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameRepo, closeRepo, err := initGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	rnd := rixit.NewRand(time.Now().UnixNano())
	gameManager := usecase.NewGameManager(logger, gameRepo, usecase.NewRandomIDs(rnd), rixit.NewShuffler(rnd))
	authService := service.NewAuthService(conf.JWTSecretKey, conf.TokenTTL)

	hub := websocket.NewHub(logger, gameManager)
	defer hub.Shutdown()

	gin.SetMode(gin.ReleaseMode)
	server := rest.New(logger, gameManager, authService, hub, conf.CORSOrigins)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func initGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	switch conf.Storage {
	case config.StorageMemory:
		return repository.NewMemoryGameRepository(), func() {}, nil
	case config.StorageRedis:
		addr := conf.Redis.GetRedisAddr()
		if addr == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, addr, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeStorage := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewGameRepository(redisStorage.Connection, conf.Redis.TTL), closeStorage, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}
