package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("cell is required")
)

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	game, err := that.games.NewGame(ctx)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to create a new game")
	}

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) handleGameState(ctx context.Context, c *client, msg *Message) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	game, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return that.sendGameError(c, msg.Action, err)
	}

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	req, err := decodeRequest(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if req.Cell == nil {
		return that.sendErrorResponse(c, msg.Action, errCellRequired.Error())
	}

	game, err := that.games.MakeMove(ctx, req.GameID, *req.Cell)
	if err != nil {
		return that.sendGameError(c, msg.Action, err)
	}

	log.Debug("turn handled", "gameID", game.ID, "cell", *req.Cell)

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) handleGameRestart(ctx context.Context, c *client, msg *Message) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	game, err := that.games.Restart(ctx, req.GameID)
	if err != nil {
		return that.sendGameError(c, msg.Action, err)
	}

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) sendGame(c *client, action string, game *entity.Game) error {
	state := game.State()
	if err := c.send(action, ResponsePayload{Game: &state}); err != nil {
		return fmt.Errorf("failed to send game %s: %w", game.ID, err)
	}

	return nil
}

func decodeRequest(msg *Message) (RequestPayload, error) {
	var req RequestPayload

	if len(msg.Payload) == 0 {
		return req, errGameIDRequired
	}

	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return req, fmt.Errorf("invalid payload: %w", err)
	}

	if req.GameID == "" {
		return req, errGameIDRequired
	}

	if !pkg.IsValidGameID(req.GameID) {
		return req, apperror.ErrGameNotFound
	}

	return req, nil
}

// sendGameError hides storage failures from the client.
func (that *Server) sendGameError(c *client, action string, err error) error {
	if errors.Is(err, apperror.ErrGameNotFound) {
		return that.sendErrorResponse(c, action, apperror.ErrGameNotFound.Error())
	}

	that.logger.Error("game operation failed", "action", action, "error", err)

	return that.sendErrorResponse(c, action, "internal server error")
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	if err := c.send(action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
