package game

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// winningCombos lists every row, every column, the main diagonal and the
// anti-diagonal of the board, in that order.
func winningCombos(board [][]entity.Move) []entity.Combo {
	size := len(board)
	combos := make([]entity.Combo, 0, 2*size+2)

	for _, row := range board {
		combo := make(entity.Combo, 0, size)
		for _, cell := range row {
			combo = append(combo, cell.Coord())
		}
		combos = append(combos, combo)
	}

	for col := 0; col < size; col++ {
		combo := make(entity.Combo, 0, size)
		for row := 0; row < size; row++ {
			combo = append(combo, board[row][col].Coord())
		}
		combos = append(combos, combo)
	}

	diagonal := make(entity.Combo, 0, size)
	antiDiagonal := make(entity.Combo, 0, size)
	for i := 0; i < size; i++ {
		diagonal = append(diagonal, board[i][i].Coord())
		antiDiagonal = append(antiDiagonal, board[i][size-1-i].Coord())
	}

	return append(combos, diagonal, antiDiagonal)
}
