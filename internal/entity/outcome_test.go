package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns PlayerX when Player X wins", func(t *testing.T) {
		// Given: a board where X holds the first column
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			PlayerX, PlayerO, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: X wins with 0,3,6
		assert.Equal(t, Outcome{Status: StatusWon, Winner: PlayerX, Line: []int{0, 3, 6}}, outcome)
	})

	t.Run("Returns PlayerO when Player O wins", func(t *testing.T) {
		// Given: a board where O holds the last row
		board := Board{
			PlayerX, PlayerX, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			PlayerO, PlayerO, PlayerO,
		}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: O wins with 6,7,8
		assert.Equal(t, Outcome{Status: StatusWon, Winner: PlayerO, Line: []int{6, 7, 8}}, outcome)
	})

	t.Run("Returns draw when the board is full", func(t *testing.T) {
		// Given: a full board with no line
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: the game is drawn
		assert.Equal(t, Outcome{Status: StatusDrawn}, outcome)
	})

	t.Run("Win on the last cell beats draw", func(t *testing.T) {
		// Given: a full board whose last move completed a diagonal
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: X wins with 0,4,8
		assert.Equal(t, StatusWon, outcome.Status)
		assert.Equal(t, []int{0, 4, 8}, outcome.Line)
	})

	t.Run("Returns in progress for a partial board", func(t *testing.T) {
		// Given: a board that is still open
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: the game continues
		assert.Equal(t, Outcome{Status: StatusInProgress}, outcome)
		assert.False(t, outcome.IsTerminal())
	})

	t.Run("Reports the first line in scan order", func(t *testing.T) {
		// Given: a contrived board with two complete rows
		board := Board{
			PlayerO, PlayerO, PlayerO,
			PlayerX, PlayerX, PlayerX,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: the first row wins
		assert.Equal(t, PlayerO, outcome.Winner)
		assert.Equal(t, []int{0, 1, 2}, outcome.Line)
	})
}

func TestEvaluate_WinningLineHoldsWinner(t *testing.T) {
	for _, combo := range WinCombos {
		for _, mark := range []Mark{PlayerX, PlayerO} {
			// Given: a board with only this line filled by mark
			var board Board
			for _, idx := range combo {
				board[idx] = mark
			}

			// When: evaluating the board
			outcome := Evaluate(board)

			// Then: every cell of the reported line holds the winner
			assert.Equal(t, StatusWon, outcome.Status)
			assert.Equal(t, mark, outcome.Winner)
			assert.Len(t, outcome.Line, 3)
			for _, idx := range outcome.Line {
				assert.Equal(t, outcome.Winner, board[idx])
				assert.True(t, outcome.InLine(idx))
			}
		}
	}
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
}
