package entity

const (
	EmptyLabel = ""

	DefaultBoardSize = 3

	SinglePlayer = 1
	TwoPlayers   = 2
)

// Move is a cell on the board. An empty Label means the cell is free.
type Move struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Label string `json:"label"`
}

func (that Move) IsEmpty() bool {
	return that.Label == EmptyLabel
}

func (that Move) Coord() Coord {
	return Coord{Row: that.Row, Col: that.Col}
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Combo is one line of cells that wins when a single player holds all of them.
type Combo []Coord

func (that Combo) Contains(coord Coord) bool {
	for _, c := range that {
		if c == coord {
			return true
		}
	}

	return false
}

func (that Combo) Clone() Combo {
	if that == nil {
		return nil
	}

	out := make(Combo, len(that))
	copy(out, that)

	return out
}
