package application

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

func TestOpenGameRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("Memory storage", func(t *testing.T) {
		conf := &config.Config{Storage: config.StorageMemory, GameTTL: time.Minute}

		repo, closeStorage, err := openGameRepository(ctx, logger, conf)
		require.NoError(t, err)
		defer closeStorage()

		// Then: the store is usable
		require.NoError(t, repo.Create(ctx, entity.NewGame("g1")))
		game, err := repo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, "g1", game.ID)
	})

	t.Run("SQLite storage", func(t *testing.T) {
		conf := &config.Config{
			Storage: config.StorageSQLite,
			GameTTL: time.Minute,
			SQLite:  config.SQLite{Path: filepath.Join(t.TempDir(), "games.db")},
		}

		repo, closeStorage, err := openGameRepository(ctx, logger, conf)
		require.NoError(t, err)
		defer closeStorage()

		require.NoError(t, repo.Create(ctx, entity.NewGame("g1")))
		_, err = repo.GetByID(ctx, "g1")
		require.NoError(t, err)
	})

	t.Run("SQLite storage without path", func(t *testing.T) {
		conf := &config.Config{Storage: config.StorageSQLite}

		_, _, err := openGameRepository(ctx, logger, conf)

		assert.Error(t, err)
	})

	t.Run("Redis storage without address", func(t *testing.T) {
		conf := &config.Config{Storage: config.StorageRedis}

		_, _, err := openGameRepository(ctx, logger, conf)

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		conf := &config.Config{Storage: "postgres"}

		_, _, err := openGameRepository(ctx, logger, conf)

		assert.ErrorIs(t, err, apperror.ErrStorageNotDefined)
		assert.Contains(t, err.Error(), `"postgres"`)
	})
}
