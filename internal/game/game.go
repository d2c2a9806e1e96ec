package game

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrInvalidBoardSize = errors.New("board size must be at least 1")
	ErrInvalidPlayers   = errors.New("players must have distinct non-empty labels")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
)

type Status string

const (
	StatusReady      Status = "ready"
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusTied       Status = "tied"
)

// State is a single game of tic-tac-toe on an N x N board.
//
// It does not check whose turn it is: callers gate every ProcessMove with
// IsValidMove and advance the turn with Toggle.
type State struct {
	players [2]entity.Player
	current int

	boardSize int
	board     [][]entity.Move
	combos    []entity.Combo

	hasWinner    bool
	winningCombo entity.Combo

	numberOfPlayers int
}

func New(players [2]entity.Player, boardSize int) (*State, error) {
	if boardSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoardSize, boardSize)
	}

	if err := validatePlayers(players); err != nil {
		return nil, err
	}

	state := &State{
		players:         players,
		boardSize:       boardSize,
		board:           newBoard(boardSize),
		numberOfPlayers: entity.TwoPlayers,
	}
	state.combos = winningCombos(state.board)

	return state, nil
}

func validatePlayers(players [2]entity.Player) error {
	first, second := players[0].Label, players[1].Label
	if first == entity.EmptyLabel || second == entity.EmptyLabel || first == second {
		return fmt.Errorf("%w: %q and %q", ErrInvalidPlayers, first, second)
	}

	return nil
}

func newBoard(size int) [][]entity.Move {
	board := make([][]entity.Move, size)
	for row := range board {
		board[row] = make([]entity.Move, size)
		for col := range board[row] {
			board[row][col] = entity.Move{Row: row, Col: col}
		}
	}

	return board
}

// IsValidMove reports whether the game has no winner yet and the target cell
// is free. Coordinates outside the board are never valid.
func (that *State) IsValidMove(move entity.Move) bool {
	if !that.inBounds(move.Row, move.Col) {
		return false
	}

	return !that.hasWinner && that.board[move.Row][move.Col].IsEmpty()
}

// ProcessMove writes the move to the board and records the first complete
// combo, if any. The cell is overwritten whatever it held before.
func (that *State) ProcessMove(move entity.Move) {
	that.board[move.Row][move.Col] = move

	for _, combo := range that.combos {
		if that.isComplete(combo) {
			that.hasWinner = true
			that.winningCombo = combo
			break
		}
	}
}

func (that *State) isComplete(combo entity.Combo) bool {
	first := that.board[combo[0].Row][combo[0].Col].Label
	if first == entity.EmptyLabel {
		return false
	}

	for _, coord := range combo[1:] {
		if that.board[coord.Row][coord.Col].Label != first {
			return false
		}
	}

	return true
}

// Toggle passes the turn to the other player.
func (that *State) Toggle() {
	that.current ^= 1
}

func (that *State) HasWinner() bool {
	return that.hasWinner
}

func (that *State) IsTied() bool {
	if that.hasWinner {
		return false
	}

	for _, row := range that.board {
		for _, cell := range row {
			if cell.IsEmpty() {
				return false
			}
		}
	}

	return true
}

func (that *State) IsGameOver() bool {
	return that.hasWinner || that.IsTied()
}

// Reset clears the board and the winner. The current player is kept.
func (that *State) Reset() {
	for row := range that.board {
		for col := range that.board[row] {
			that.board[row][col] = entity.Move{Row: row, Col: col}
		}
	}

	that.hasWinner = false
	that.winningCombo = nil
}

func (that *State) SetNumberOfPlayers(n int) {
	that.numberOfPlayers = n
}

func (that *State) NumberOfPlayers() int {
	return that.numberOfPlayers
}

func (that *State) IsSinglePlayer() bool {
	return that.numberOfPlayers == entity.SinglePlayer
}

func (that *State) Status() Status {
	switch {
	case that.hasWinner:
		return StatusWon
	case that.IsTied():
		return StatusTied
	case that.isEmpty():
		return StatusReady
	default:
		return StatusInProgress
	}
}

func (that *State) isEmpty() bool {
	for _, row := range that.board {
		for _, cell := range row {
			if !cell.IsEmpty() {
				return false
			}
		}
	}

	return true
}

func (that *State) inBounds(row, col int) bool {
	return row >= 0 && row < that.boardSize && col >= 0 && col < that.boardSize
}
