package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
}

// Server serves the HTML board, the JSON API and the health check.
type Server struct {
	logger *slog.Logger
	games  gameUseCase
	theme  string
}

func New(logger *slog.Logger, games gameUseCase, theme string) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		games:  games,
		theme:  theme,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.handlePing)

	mux.HandleFunc("GET /{$}", that.handleIndex)
	mux.HandleFunc("POST /games/{id}/cells/{cell}", that.handleCell)
	mux.HandleFunc("POST /games/{id}/restart", that.handleRestart)

	mux.HandleFunc("POST /api/games", that.handleAPICreate)
	mux.HandleFunc("GET /api/games/{id}", that.handleAPIGet)
	mux.HandleFunc("POST /api/games/{id}/moves", that.handleAPIMove)
	mux.HandleFunc("POST /api/games/{id}/restart", that.handleAPIRestart)

	return mux
}

// Start - serves HTTP on port until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// pathGameID returns the {id} path value. Ids that cannot name a game are reported as not found.
func pathGameID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if !pkg.IsValidGameID(id) {
		return "", apperror.ErrGameNotFound
	}

	return id, nil
}
