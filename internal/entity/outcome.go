package entity

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"
)

// Outcome is the result of evaluating a board. Line is only set for a win.
type Outcome struct {
	Status Status
	Winner Mark
	Line   []int
}

func (that Outcome) IsTerminal() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

// InLine reports whether cell belongs to the winning line.
func (that Outcome) InLine(cell int) bool {
	for _, idx := range that.Line {
		if idx == cell {
			return true
		}
	}
	return false
}

// Evaluate derives the outcome of a board.
func Evaluate(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			return Outcome{
				Status: StatusWon,
				Winner: a,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	// the game continues until every cell is filled
	if !board.IsFull() {
		return Outcome{Status: StatusInProgress}
	}

	return Outcome{Status: StatusDrawn}
}
