package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const maxRequestBody = 1 << 10

type moveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.NewGame(r.Context())
	if err != nil {
		that.writeAPIError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game.State())
}

func (that *Server) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathGameID(r)
	if err != nil {
		that.writeAPIError(w, err)
		return
	}

	game, err := that.games.GetGame(r.Context(), gameID)
	that.writeAPIGame(w, game, err)
}

func (that *Server) handleAPIMove(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathGameID(r)
	if err != nil {
		that.writeAPIError(w, err)
		return
	}

	var req moveRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": <0-8>}"})
		return
	}

	game, err := that.games.MakeMove(r.Context(), gameID, *req.Cell)
	that.writeAPIGame(w, game, err)
}

func (that *Server) handleAPIRestart(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathGameID(r)
	if err != nil {
		that.writeAPIError(w, err)
		return
	}

	game, err := that.games.Restart(r.Context(), gameID)
	that.writeAPIGame(w, game, err)
}

func (that *Server) writeAPIGame(w http.ResponseWriter, game *entity.Game, err error) {
	if err != nil {
		that.writeAPIError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game.State())
}

func (that *Server) writeAPIError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
		return
	}

	that.logger.Error("api request failed", "error", err)
	that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
