package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type memoryEntry struct {
	game      entity.Game
	expiresAt time.Time
}

// memoryGame keeps games in process. Entries are copied in and out so callers
// never share the stored value.
type memoryGame struct {
	mu    sync.Mutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return newMemoryGameRepository(ttl, time.Now)
}

func newMemoryGameRepository(ttl time.Duration, now func() time.Time) *memoryGame {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   now,
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.purgeExpired()
	that.games[game.ID] = that.entry(*game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	game := entry.game
	return &game, nil
}

func (that *memoryGame) Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	game := entry.game
	if err := fn(&game); err != nil {
		loaded := entry.game
		return &loaded, err
	}

	that.games[id] = that.entry(game)

	return &game, nil
}

func (that *memoryGame) entry(game entity.Game) memoryEntry {
	entry := memoryEntry{game: game}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}
	return entry
}

// lookup must be called with mu held.
func (that *memoryGame) lookup(id string) (memoryEntry, bool) {
	entry, ok := that.games[id]
	if !ok {
		return memoryEntry{}, false
	}

	if that.isExpired(entry) {
		delete(that.games, id)
		return memoryEntry{}, false
	}

	return entry, true
}

func (that *memoryGame) isExpired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}

// purgeExpired must be called with mu held.
func (that *memoryGame) purgeExpired() {
	for id, entry := range that.games {
		if that.isExpired(entry) {
			delete(that.games, id)
		}
	}
}
