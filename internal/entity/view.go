package entity

const (
	ColorDefault   = "black"
	ColorHighlight = "red"
)

type CellView struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	Highlight bool   `json:"highlight,omitempty"`
}

// View is what a front-end needs to draw a session.
type View struct {
	ID            string       `json:"id"`
	BoardSize     int          `json:"board_size"`
	Cells         [][]CellView `json:"cells"`
	Status        string       `json:"status"`
	StatusColor   string       `json:"status_color"`
	CurrentPlayer Player       `json:"current_player"`
	SinglePlayer  bool         `json:"single_player"`
	GameOver      bool         `json:"game_over"`
}
