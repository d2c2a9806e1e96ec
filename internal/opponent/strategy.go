package opponent

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Board is the read-only view of a game the strategy needs.
type Board interface {
	BoardSize() int
	Cell(row, col int) entity.Move
	CurrentPlayer() entity.Player
	Opponent() entity.Player
	Combos() []entity.Combo
}

// Strategy picks the computer's move with a fixed-priority heuristic:
// complete or block a line, take the centre, then a corner or an edge
// depending on who holds the centre, then any free cell.
type Strategy struct{}

func New() *Strategy {
	return &Strategy{}
}

// ComputeNextMove returns the move the current player should make.
func (that *Strategy) ComputeNextMove(board Board) (entity.Move, error) {
	size := board.BoardSize()

	if move, ok := blockMove(board, size-1); ok {
		return move, nil
	}

	if move, ok := centerSpace(board); ok {
		return move, nil
	}

	var (
		move entity.Move
		ok   bool
	)
	if opponentHoldsCenter(board) {
		move, ok = cornerNext(board)
	} else {
		move, ok = notCornerNext(board)
	}

	if ok {
		return move, nil
	}

	if move, ok = nextOpenSpot(board); ok {
		return move, nil
	}

	return entity.Move{}, ErrNoAvailableMoves
}

// blockMove looks for a combo where the opponent holds exactly blockLength
// cells and every other cell is free, and returns the first free one.
func blockMove(board Board, blockLength int) (entity.Move, bool) {
	size := board.BoardSize()
	opponent := board.Opponent().Label

	for _, combo := range board.Combos() {
		var (
			blocks        []entity.Coord
			opponentCells int
		)

		for _, coord := range combo {
			switch board.Cell(coord.Row, coord.Col).Label {
			case entity.EmptyLabel:
				blocks = append(blocks, coord)
			case opponent:
				opponentCells++
			}
		}

		if opponentCells == blockLength && len(blocks) == size-blockLength && len(blocks) > 0 {
			return moveFor(board, blocks[0]), true
		}
	}

	return entity.Move{}, false
}

func center(board Board) (entity.Coord, bool) {
	size := board.BoardSize()
	if size%2 == 0 {
		return entity.Coord{}, false
	}

	return entity.Coord{Row: size / 2, Col: size / 2}, true
}

func centerSpace(board Board) (entity.Move, bool) {
	coord, ok := center(board)
	if !ok || !board.Cell(coord.Row, coord.Col).IsEmpty() {
		return entity.Move{}, false
	}

	return moveFor(board, coord), true
}

// opponentHoldsCenter reports whether the centre is taken by someone other
// than the current player.
func opponentHoldsCenter(board Board) bool {
	coord, ok := center(board)
	if !ok {
		return false
	}

	label := board.Cell(coord.Row, coord.Col).Label

	return label != entity.EmptyLabel && label != board.CurrentPlayer().Label
}

func corners(size int) []entity.Coord {
	edge := size - 1

	return []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: edge}, {Row: edge, Col: 0}, {Row: edge, Col: edge}}
}

func isCorner(size int, coord entity.Coord) bool {
	for _, corner := range corners(size) {
		if corner == coord {
			return true
		}
	}

	return false
}

// cornerNext returns the first free corner in row-major order.
func cornerNext(board Board) (entity.Move, bool) {
	size := board.BoardSize()

	return firstFree(board, func(coord entity.Coord) bool {
		return isCorner(size, coord)
	})
}

// notCornerNext returns the first free cell that is not a corner.
func notCornerNext(board Board) (entity.Move, bool) {
	size := board.BoardSize()

	return firstFree(board, func(coord entity.Coord) bool {
		return !isCorner(size, coord)
	})
}

func nextOpenSpot(board Board) (entity.Move, bool) {
	return firstFree(board, func(entity.Coord) bool { return true })
}

func firstFree(board Board, accept func(entity.Coord) bool) (entity.Move, bool) {
	size := board.BoardSize()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			coord := entity.Coord{Row: row, Col: col}
			if board.Cell(row, col).IsEmpty() && accept(coord) {
				return moveFor(board, coord), true
			}
		}
	}

	return entity.Move{}, false
}

func moveFor(board Board, coord entity.Coord) entity.Move {
	return entity.Move{Row: coord.Row, Col: coord.Col, Label: board.CurrentPlayer().Label}
}
