package entity

import (
	"errors"
	"fmt"
)

const BoardSize = 9

var (
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameFinished = errors.New("game is already finished")

	// WinCombos are scanned in order; the first complete line is the reported one.
	WinCombos = [...][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board holds the cells in row-major order.
type Board [BoardSize]Mark

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}
	return true
}

// Game is the state of one hot-seat session. Only the board and the turn are
// stored; the outcome is always derived from the board.
type Game struct {
	ID    string `json:"id"`
	Board Board  `json:"board"`
	Turn  Mark   `json:"turn"`
}

func NewGame(id string) *Game {
	game := &Game{ID: id}
	game.Restart()

	return game
}

// Outcome evaluates the current board.
func (that *Game) Outcome() Outcome {
	return Evaluate(that.Board)
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsTerminal()
}

// ApplyMove places the current turn's mark on cell and passes the turn.
// A rejected move returns one of ErrInvalidCell, ErrGameFinished or
// ErrCellOccupied and leaves the game untouched.
func (that *Game) ApplyMove(cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.IsFinished() {
		return ErrGameFinished
	}

	if !that.Board[cell].IsEmpty() {
		return fmt.Errorf("%w: cell %d", ErrCellOccupied, cell)
	}

	that.Board[cell] = that.Turn
	that.Turn = that.Turn.Opponent()

	return nil
}

// Restart clears the board and hands the first move back to X.
func (that *Game) Restart() {
	that.Board = Board{}
	that.Turn = PlayerX
}

// IsRejectedMove reports whether err is one of the errors ApplyMove uses to
// refuse a move.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrInvalidCell) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrGameFinished)
}
