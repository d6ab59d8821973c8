package entity

// State is the read model handed to clients: the stored game plus its derived outcome.
type State struct {
	ID     string `json:"id"`
	Board  Board  `json:"board"`
	Turn   Mark   `json:"turn"`
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
	Line   []int  `json:"line,omitempty"`
}

func (that *Game) State() State {
	outcome := that.Outcome()

	return State{
		ID:     that.ID,
		Board:  that.Board,
		Turn:   that.Turn,
		Status: outcome.Status,
		Winner: outcome.Winner,
		Line:   outcome.Line,
	}
}
