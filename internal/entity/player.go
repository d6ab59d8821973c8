package entity

// Mark is the symbol a player places on the board. The zero value is an empty cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// Opponent returns the mark that moves after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}
