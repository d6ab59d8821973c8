package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const maxUpdateRetries = 5

// UpdateFunc mutates a game inside Update. Returning an error discards the change.
type UpdateFunc func(game *entity.Game) error

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	// Update loads the game, applies fn and stores the result atomically. When fn
	// fails, the game as loaded is returned together with fn's error.
	Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error)
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(game.ID), gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return decodeGame(response)
}

func (that *dbGame) Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error) {
	key := gameKey(id)

	var (
		result *entity.Game
		fnErr  error
	)

	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrGameNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}

		loaded, err := decodeGame(response)
		if err != nil {
			return err
		}

		game := *loaded
		if fnErr = fn(&game); fnErr != nil {
			result = loaded
			return nil
		}

		gameJSON, err := json.Marshal(&game)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		// EXEC fails with TxFailedErr if the key changed after WATCH
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, that.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = &game
		return nil
	}

	for range maxUpdateRetries {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return result, fnErr
	}

	return nil, fmt.Errorf("%w: game %s", apperror.ErrConcurrentUpdate, id)
}

func decodeGame(data []byte) (*entity.Game, error) {
	var existingGame entity.Game
	if err := json.Unmarshal(data, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}
