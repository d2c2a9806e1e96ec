package game

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Snapshot captures the current board, turn, winner and mode.
func (that *State) Snapshot() entity.Snapshot {
	return entity.Snapshot{
		BoardSize:       that.boardSize,
		Players:         that.players,
		Current:         that.current,
		Cells:           that.Board(),
		HasWinner:       that.hasWinner,
		WinningCombo:    that.winningCombo.Clone(),
		NumberOfPlayers: that.numberOfPlayers,
	}
}

// Restore rebuilds a game from a snapshot. Combos are regenerated from the
// board size; cell coordinates always come from their position.
func Restore(snapshot entity.Snapshot) (*State, error) {
	state, err := New(snapshot.Players, snapshot.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if snapshot.Current != 0 && snapshot.Current != 1 {
		return nil, fmt.Errorf("%w: current player index %d", ErrInvalidSnapshot, snapshot.Current)
	}

	switch snapshot.NumberOfPlayers {
	case 0, entity.SinglePlayer, entity.TwoPlayers:
	default:
		return nil, fmt.Errorf("%w: number of players %d", ErrInvalidSnapshot, snapshot.NumberOfPlayers)
	}

	if len(snapshot.Cells) != snapshot.BoardSize {
		return nil, fmt.Errorf("%w: %d rows for board size %d", ErrInvalidSnapshot, len(snapshot.Cells), snapshot.BoardSize)
	}

	for row, cells := range snapshot.Cells {
		if len(cells) != snapshot.BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidSnapshot, row, len(cells))
		}

		for col, cell := range cells {
			if !state.ownsLabel(cell.Label) {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds unknown label %q", ErrInvalidSnapshot, row, col, cell.Label)
			}

			state.board[row][col].Label = cell.Label
		}
	}

	for _, coord := range snapshot.WinningCombo {
		if !state.inBounds(coord.Row, coord.Col) {
			return nil, fmt.Errorf("%w: winning cell (%d,%d) is off the board", ErrInvalidSnapshot, coord.Row, coord.Col)
		}
	}

	state.current = snapshot.Current
	state.hasWinner = snapshot.HasWinner
	state.winningCombo = snapshot.WinningCombo.Clone()
	if snapshot.NumberOfPlayers != 0 {
		state.numberOfPlayers = snapshot.NumberOfPlayers
	}

	return state, nil
}

// ownsLabel reports whether label is empty or belongs to one of the players.
func (that *State) ownsLabel(label string) bool {
	return label == entity.EmptyLabel || label == that.players[0].Label || label == that.players[1].Label
}
