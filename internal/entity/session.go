package entity

// Snapshot is the current board of a game, enough to rebuild it. It never
// holds the sequence of moves that led there.
type Snapshot struct {
	BoardSize       int       `json:"board_size"`
	Players         [2]Player `json:"players"`
	Current         int       `json:"current"`
	Cells           [][]Move  `json:"cells"`
	HasWinner       bool      `json:"has_winner"`
	WinningCombo    Combo     `json:"winning_combo,omitempty"`
	NumberOfPlayers int       `json:"number_of_players"`
}

// Session is one board driven by one front-end.
type Session struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	StatusColor string   `json:"status_color"`
	Game        Snapshot `json:"game"`
}
