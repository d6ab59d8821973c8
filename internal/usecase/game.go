package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
)

type GameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	// MakeMove applies a move for whoever's turn it is. Moves the game refuses
	// (occupied cell, finished game, out of range index) are no-ops: the
	// unchanged game is returned without an error.
	MakeMove(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, error)
}

type gameUseCase struct {
	logger   *slog.Logger
	gameRepo gameRepo

	generateID func() (string, error)
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo) GameUseCase {
	return &gameUseCase{
		logger:     logger.With("component", "usecase"),
		gameRepo:   gameRepo,
		generateID: pkg.GenerateGameID,
	}
}

func (that *gameUseCase) NewGame(ctx context.Context) (*entity.Game, error) {
	gameID, err := that.generateID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID)
	if err = that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game created", "gameID", gameID)

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) MakeMove(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID, "cell", cell)

	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		return game.ApplyMove(cell)
	})
	if entity.IsRejectedMove(err) {
		log.Debug("move ignored", "reason", err)
		return game, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if outcome := game.Outcome(); outcome.IsTerminal() {
		log.Info("game finished", "status", outcome.Status, "winner", outcome.Winner)
	}

	return game, nil
}

func (that *gameUseCase) Restart(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		game.Restart()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	that.logger.Debug("game restarted", "gameID", gameID)

	return game, nil
}
