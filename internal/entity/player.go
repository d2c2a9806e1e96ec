package entity

// Player is one side of a game. Color is a display attribute only.
type Player struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// DefaultPlayers - X moves first.
var DefaultPlayers = [2]Player{
	{Label: "X", Color: "blue"},
	{Label: "O", Color: "green"},
}
