package usecase

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
)

func buildView(session *entity.Session, state *game.State) *entity.View {
	colors := make(map[string]string, 2)
	for _, player := range state.Players() {
		colors[player.Label] = player.Color
	}

	winningCombo := state.WinningCombo()
	size := state.BoardSize()

	cells := make([][]entity.CellView, size)
	for row := 0; row < size; row++ {
		cells[row] = make([]entity.CellView, size)
		for col := 0; col < size; col++ {
			move := state.Cell(row, col)

			color := entity.ColorDefault
			if !move.IsEmpty() {
				color = colors[move.Label]
			}

			cells[row][col] = entity.CellView{
				Row:       row,
				Col:       col,
				Label:     move.Label,
				Color:     color,
				Highlight: winningCombo.Contains(move.Coord()),
			}
		}
	}

	return &entity.View{
		ID:            session.ID,
		BoardSize:     size,
		Cells:         cells,
		Status:        session.Status,
		StatusColor:   session.StatusColor,
		CurrentPlayer: state.CurrentPlayer(),
		SinglePlayer:  state.IsSinglePlayer(),
		GameOver:      state.IsGameOver(),
	}
}
