package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/transport/web"
)

// handleIndex starts a new game on every page load.
func (that *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.NewGame(r.Context())
	if err != nil {
		that.logger.Error("failed to create game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	web.Render(w, r, http.StatusOK, web.Game(game.State()), web.Page(that.theme, game.State()))
}

func (that *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(r.PathValue("cell"))
	if err != nil {
		http.Error(w, "invalid cell", http.StatusBadRequest)
		return
	}

	gameID, err := pathGameID(r)
	if err != nil {
		that.renderGame(w, r, nil, err)
		return
	}

	game, err := that.games.MakeMove(r.Context(), gameID, cell)
	that.renderGame(w, r, game, err)
}

func (that *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathGameID(r)
	if err != nil {
		that.renderGame(w, r, nil, err)
		return
	}

	game, err := that.games.Restart(r.Context(), gameID)
	that.renderGame(w, r, game, err)
}

func (that *Server) renderGame(w http.ResponseWriter, r *http.Request, game *entity.Game, err error) {
	log := that.logger.With("method", "renderGame", "path", r.URL.Path)

	if errors.Is(err, apperror.ErrGameNotFound) {
		page := web.NotFound(that.theme)
		web.Render(w, r, http.StatusNotFound, page, page)
		return
	}

	if err != nil {
		log.Error("failed to update game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	state := game.State()
	web.Render(w, r, http.StatusOK, web.Game(state), web.Page(that.theme, state))
}
