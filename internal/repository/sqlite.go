package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// sqlGame stores each game as a JSON row. Update is optimistic: the write only
// lands if the row version still matches what was read.
type sqlGame struct {
	conn *sql.DB
	ttl  time.Duration
	now  func() time.Time
}

func NewSQLiteGameRepository(conn *sql.DB, ttl time.Duration) GameRepository {
	return newSQLiteGameRepository(conn, ttl, time.Now)
}

func newSQLiteGameRepository(conn *sql.DB, ttl time.Duration, now func() time.Time) *sqlGame {
	return &sqlGame{
		conn: conn,
		ttl:  ttl,
		now:  now,
	}
}

func (that *sqlGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	now := that.now().UnixNano()

	if _, err = that.conn.ExecContext(ctx, `DELETE FROM games WHERE expires_at != 0 AND expires_at <= ?`, now); err != nil {
		return fmt.Errorf("can't purge expired games: %w", err)
	}

	query := `INSERT INTO games (id, data, version, expires_at) VALUES (?, ?, 1, ?)`
	if _, err = that.conn.ExecContext(ctx, query, game.ID, string(gameJSON), that.expiresAt()); err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *sqlGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	game, _, err := that.load(ctx, id)
	return game, err
}

func (that *sqlGame) Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error) {
	query := `UPDATE games SET data = ?, version = version + 1, expires_at = ? WHERE id = ? AND version = ?`

	for range maxUpdateRetries {
		loaded, version, err := that.load(ctx, id)
		if err != nil {
			return nil, err
		}

		game := *loaded
		if err = fn(&game); err != nil {
			return loaded, err
		}

		gameJSON, err := json.Marshal(&game)
		if err != nil {
			return nil, fmt.Errorf("could not marshal game: %w", err)
		}

		res, err := that.conn.ExecContext(ctx, query, string(gameJSON), that.expiresAt(), id, version)
		if err != nil {
			return nil, fmt.Errorf("can't update game: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("can't update game: %w", err)
		}

		if affected == 1 {
			return &game, nil
		}
	}

	return nil, fmt.Errorf("%w: game %s", apperror.ErrConcurrentUpdate, id)
}

func (that *sqlGame) load(ctx context.Context, id string) (*entity.Game, int64, error) {
	query := `SELECT data, version FROM games WHERE id = ? AND (expires_at = 0 OR expires_at > ?)`

	var (
		data    string
		version int64
	)

	err := that.conn.QueryRowContext(ctx, query, id, that.now().UnixNano()).Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("can't find game: %w", err)
	}

	game, err := decodeGame([]byte(data))
	if err != nil {
		return nil, 0, err
	}

	return game, version, nil
}

// expiresAt returns 0 for games that never expire.
func (that *sqlGame) expiresAt() int64 {
	if that.ttl <= 0 {
		return 0
	}

	return that.now().Add(that.ttl).UnixNano()
}
