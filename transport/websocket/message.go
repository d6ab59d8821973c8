package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	actionGameNew     = "game:new"
	actionGameState   = "game:state"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload is what clients send with game:state, game:turn and game:restart.
type RequestPayload struct {
	GameID string `json:"game_id"`
	Cell   *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.State `json:"game,omitempty"`
	Error string        `json:"error,omitempty"`
}

// client is served by a single goroutine, which is gorilla's one reader and one writer.
// Only the shutdown close frame is written from elsewhere, through WriteControl.
type client struct {
	conn *websocket.Conn
}

func (that *client) send(action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
