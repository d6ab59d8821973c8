// Package web renders the game as HTML. Components live in .templ files;
// run `templ generate` after editing them.
package web

import (
	"strconv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	GameElementID = "game"

	cellLabelPrefix = "Tic Tac Toe cell"
)

func CellPath(gameID string, cell int) string {
	return "/games/" + gameID + "/cells/" + strconv.Itoa(cell)
}

func RestartPath(gameID string) string {
	return "/games/" + gameID + "/restart"
}

// CellLabel is the accessible name of a board cell.
func CellLabel(mark entity.Mark) string {
	if mark.IsEmpty() {
		return cellLabelPrefix + ", empty"
	}
	return cellLabelPrefix + ", occupied by " + string(mark)
}

// StatusText is the plain text of the status line.
func StatusText(state entity.State) string {
	switch state.Status {
	case entity.StatusWon:
		return string(state.Winner) + " wins!"
	case entity.StatusDrawn:
		return "It's a draw!"
	default:
		return string(state.Turn) + " turn"
	}
}

func markClass(mark entity.Mark) string {
	if mark == entity.PlayerO {
		return "mark-o"
	}
	return "mark-x"
}

func cellClass(state entity.State, cell int) string {
	outcome := entity.Outcome{Status: state.Status, Winner: state.Winner, Line: state.Line}
	if outcome.InLine(cell) {
		return "ttt-square highlight"
	}
	return "ttt-square"
}

const styleElement = "<style>" + stylesheet + "</style>"
