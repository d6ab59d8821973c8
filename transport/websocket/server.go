package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second
	maxMessageSize  = 1 << 10
)

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameRestart] = server.handleGameRestart

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it once ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until the peer goes away.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn}

	// Shutdown does not reach hijacked connections, so close them with the server context.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			that.closeGoingAway(c)
		case <-done:
		}
	}()

	log.Debug("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client. Frames that are not a
// valid Message get an error reply; only transport failures end the loop.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Warn("malformed message", "error", err)
			if err = c.send(actionError, ResponsePayload{Error: "malformed message"}); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Warn("unknown action", "action", msg.Action)
			if err = c.send(msg.Action, ResponsePayload{Error: "unknown action"}); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, c, &msg); err != nil {
			log.Error("error processing message", "action", msg.Action, "error", err)
		}
	}
}

func (that *Server) closeGoingAway(c *client) {
	deadline := time.Now().Add(time.Second)
	closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")

	if err := c.conn.WriteControl(websocket.CloseMessage, closeMsg, deadline); err != nil {
		that.logger.Debug("failed to send close frame", "error", err)
	}

	_ = c.conn.Close()
}
