package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (that *fakeClock) Now() time.Time {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.now
}

func (that *fakeClock) Advance(d time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.now = that.now.Add(d)
}

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create and GetByID return copies", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(testTTL)
		game := entity.NewGame("123")
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: the caller mutates both its own and the retrieved game
		require.NoError(t, game.ApplyMove(0))
		retrieved, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		require.NoError(t, retrieved.ApplyMove(1))

		// Then: the stored game is untouched
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("123"), stored)
	})

	t.Run("GetByID unknown game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(testTTL)

		// When: looking up a missing id
		game, err := gameRepo.GetByID(ctx, "missing")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, game)
	})

	t.Run("Update stores accepted changes", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(testTTL)
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))

		// When: a move is applied
		updated, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			return game.ApplyMove(4)
		})

		// Then: it is persisted
		require.NoError(t, err)
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
		assert.Equal(t, entity.PlayerX, stored.Board[4])
	})

	t.Run("Update discards rejected changes", func(t *testing.T) {
		// Given: a stored game with the centre taken
		gameRepo := NewMemoryGameRepository(testTTL)
		game := entity.NewGame("123")
		require.NoError(t, game.ApplyMove(4))
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: the update function partially mutates and then fails
		returned, err := gameRepo.Update(ctx, "123", func(g *entity.Game) error {
			g.Restart()
			return entity.ErrGameFinished
		})

		// Then: the loaded game is returned and nothing was stored
		require.ErrorIs(t, err, entity.ErrGameFinished)
		assert.Equal(t, game, returned)
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Update unknown game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(testTTL)

		_, err := gameRepo.Update(ctx, "missing", func(*entity.Game) error { return nil })

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Update honours a cancelled context", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(testTTL)
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := gameRepo.Update(cancelled, "123", func(*entity.Game) error { return nil })

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Idle games expire", func(t *testing.T) {
		// Given: a repository on a fake clock
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(time.Minute, clock.Now)
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("old")))

		// When: an update refreshes the ttl half way through
		clock.Advance(30 * time.Second)
		_, err := gameRepo.Update(ctx, "old", func(game *entity.Game) error { return game.ApplyMove(0) })
		require.NoError(t, err)

		// Then: the game survives the original deadline
		clock.Advance(45 * time.Second)
		_, err = gameRepo.GetByID(ctx, "old")
		require.NoError(t, err)

		// And: expires once idle for the full ttl
		clock.Advance(time.Minute)
		_, err = gameRepo.GetByID(ctx, "old")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Create purges expired games", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(time.Minute, clock.Now)
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("old")))

		clock.Advance(2 * time.Minute)
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("new")))

		assert.Len(t, gameRepo.games, 1)
		assert.Contains(t, gameRepo.games, "new")
	})

	t.Run("Zero ttl keeps games", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))

		_, err := gameRepo.GetByID(ctx, "123")

		require.NoError(t, err)
	})
}
