package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
	"github.com/rocketscienceinc/tictactoe-web/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := openGameRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	gameUseCase := usecase.NewGameUseCase(logger, gameRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameUseCase, conf.Theme).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameUseCase).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// openGameRepository picks the game store named by conf.Storage. The returned
// func releases whatever the store holds open.
func openGameRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	log := logger.With("method", "openGameRepository", "storage", conf.Storage)

	switch conf.Storage {
	case config.StorageMemory:
		log.Info("using in-memory game storage")
		return repository.NewMemoryGameRepository(conf.GameTTL), func() {}, nil

	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("using redis game storage", "addr", redisAddrString)

		closeStorage := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewGameRepository(redisStorage, conf.GameTTL), closeStorage, nil

	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		log.Info("using sqlite game storage", "path", conf.SQLite.Path)

		closeStorage := func() {
			if err := sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}

		return repository.NewSQLiteGameRepository(sqliteStorage.Connection, conf.GameTTL), closeStorage, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrStorageNotDefined, conf.Storage)
	}
}
