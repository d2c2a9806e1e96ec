package game

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

func (that *State) BoardSize() int {
	return that.boardSize
}

func (that *State) CurrentPlayer() entity.Player {
	return that.players[that.current]
}

// Opponent is the player who is not on turn.
func (that *State) Opponent() entity.Player {
	return that.players[that.current^1]
}

func (that *State) Players() [2]entity.Player {
	return that.players
}

// Cell returns the move stored at (row, col). The coordinates must be on the board.
func (that *State) Cell(row, col int) entity.Move {
	return that.board[row][col]
}

// Board returns a copy of the grid in row-major order.
func (that *State) Board() [][]entity.Move {
	out := make([][]entity.Move, len(that.board))
	for row := range that.board {
		out[row] = make([]entity.Move, len(that.board[row]))
		copy(out[row], that.board[row])
	}

	return out
}

// WinningCombo is the combo that completed the game, or nil.
func (that *State) WinningCombo() entity.Combo {
	return that.winningCombo.Clone()
}

// Combos returns a copy of every winning line: rows, columns, then both diagonals.
func (that *State) Combos() []entity.Combo {
	out := make([]entity.Combo, len(that.combos))
	for i, combo := range that.combos {
		out[i] = combo.Clone()
	}

	return out
}
