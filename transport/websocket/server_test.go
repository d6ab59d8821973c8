package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

func newTestServer(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return startServer(t, ctx)
}

func startServer(t *testing.T, ctx context.Context) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	games := usecase.NewGameUseCase(logger, repository.NewMemoryGameRepository(time.Minute))

	srv := httptest.NewServer(New(logger, games).Handler(ctx))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	msg := Message{Action: action}
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = body
	}

	require.NoError(t, conn.WriteJSON(msg))
}

func receive(t *testing.T, conn *websocket.Conn) (string, ResponsePayload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return msg.Action, payload
}

func newGame(t *testing.T, conn *websocket.Conn) entity.State {
	t.Helper()

	send(t, conn, actionGameNew, nil)
	action, payload := receive(t, conn)
	require.Equal(t, actionGameNew, action)
	require.NotNil(t, payload.Game)

	return *payload.Game
}

func cell(n int) *int { return &n }

func TestServer_GameFlow(t *testing.T) {
	url := newTestServer(t)
	conn := dial(t, url)

	// Given: a new game
	game := newGame(t, conn)
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, entity.StatusInProgress, game.Status)
	assert.Equal(t, entity.PlayerX, game.Turn)

	// When: X takes the top row
	var payload ResponsePayload
	for _, n := range []int{0, 3, 1, 4, 2} {
		send(t, conn, actionGameTurn, RequestPayload{GameID: game.ID, Cell: cell(n)})
		var action string
		action, payload = receive(t, conn)
		require.Equal(t, actionGameTurn, action)
		require.Empty(t, payload.Error)
	}

	// Then: X won on 0,1,2
	require.NotNil(t, payload.Game)
	assert.Equal(t, entity.StatusWon, payload.Game.Status)
	assert.Equal(t, entity.PlayerX, payload.Game.Winner)
	assert.Equal(t, []int{0, 1, 2}, payload.Game.Line)

	// And: further moves are ignored
	send(t, conn, actionGameTurn, RequestPayload{GameID: game.ID, Cell: cell(8)})
	_, after := receive(t, conn)
	assert.Equal(t, payload.Game, after.Game)

	// And: restart gives back an empty board
	send(t, conn, actionGameRestart, RequestPayload{GameID: game.ID})
	action, restarted := receive(t, conn)
	assert.Equal(t, actionGameRestart, action)
	assert.Equal(t, game, *restarted.Game)
}

func TestServer_GameState(t *testing.T) {
	url := newTestServer(t)
	conn := dial(t, url)
	game := newGame(t, conn)

	send(t, conn, actionGameState, RequestPayload{GameID: game.ID})
	action, payload := receive(t, conn)

	assert.Equal(t, actionGameState, action)
	assert.Equal(t, game, *payload.Game)
}

func TestServer_SharedGameID(t *testing.T) {
	url := newTestServer(t)
	first, second := dial(t, url), dial(t, url)

	// Given: a game played on the first connection
	game := newGame(t, first)
	send(t, first, actionGameTurn, RequestPayload{GameID: game.ID, Cell: cell(4)})
	_, _ = receive(t, first)

	// When: a second connection asks for it by id
	send(t, second, actionGameState, RequestPayload{GameID: game.ID})
	action, payload := receive(t, second)

	// Then: it sees the stored state
	assert.Equal(t, actionGameState, action)
	assert.Equal(t, entity.PlayerX, payload.Game.Board[4])
	assert.Equal(t, entity.PlayerO, payload.Game.Turn)
}

func TestServer_Errors(t *testing.T) {
	url := newTestServer(t)

	t.Run("Unknown action", func(t *testing.T) {
		conn := dial(t, url)

		send(t, conn, "game:leave", nil)
		action, payload := receive(t, conn)

		assert.Equal(t, "game:leave", action)
		assert.Equal(t, "unknown action", payload.Error)
	})

	t.Run("Unknown game", func(t *testing.T) {
		conn := dial(t, url)

		send(t, conn, actionGameTurn, RequestPayload{GameID: "missing", Cell: cell(0)})
		_, payload := receive(t, conn)

		assert.Equal(t, "game not found", payload.Error)
		assert.Nil(t, payload.Game)
	})

	t.Run("Missing game id", func(t *testing.T) {
		conn := dial(t, url)

		send(t, conn, actionGameState, nil)
		_, payload := receive(t, conn)

		assert.Equal(t, errGameIDRequired.Error(), payload.Error)
	})

	t.Run("Missing cell", func(t *testing.T) {
		conn := dial(t, url)
		game := newGame(t, conn)

		send(t, conn, actionGameTurn, RequestPayload{GameID: game.ID})
		_, payload := receive(t, conn)

		assert.Equal(t, errCellRequired.Error(), payload.Error)
	})

	t.Run("Malformed message keeps the connection open", func(t *testing.T) {
		conn := dial(t, url)

		// When: frames that are not a whole JSON message arrive, including truncated and empty ones
		for _, frame := range []string{"not json", `{"action":`, "", `{"action":"game:new"`, `["game:new"]`} {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))

			// Then: each one gets an error reply
			action, payload := receive(t, conn)
			assert.Equal(t, actionError, action, frame)
			assert.Equal(t, "malformed message", payload.Error, frame)
		}

		// And: the connection still serves requests
		newGame(t, conn)
	})
}

func TestServer_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	// Given: an open connection with a game in flight
	url := startServer(t, ctx)
	conn := dial(t, url)
	newGame(t, conn)

	// When: the server context is cancelled
	cancel()

	// Then: the server closes the connection with going away
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), err.Error())
}
