package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newGame(t *testing.T, size int) *State {
	t.Helper()

	state, err := New(entity.DefaultPlayers, size)
	require.NoError(t, err)

	return state
}

// play validates, applies and toggles each move for whoever is on turn.
func play(t *testing.T, state *State, coords ...entity.Coord) {
	t.Helper()

	for i, coord := range coords {
		move := entity.Move{Row: coord.Row, Col: coord.Col, Label: state.CurrentPlayer().Label}
		require.Truef(t, state.IsValidMove(move), "move %d %v should be valid", i, coord)

		state.ProcessMove(move)
		if !state.IsGameOver() {
			state.Toggle()
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("Creates an empty board with X on turn", func(t *testing.T) {
		// When: a new 3x3 game is created
		state := newGame(t, 3)

		// Then: every cell is empty and carries its own coordinates
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				assert.Equal(t, entity.Move{Row: row, Col: col}, state.Cell(row, col))
			}
		}

		assert.Equal(t, entity.DefaultPlayers[0], state.CurrentPlayer())
		assert.Equal(t, entity.DefaultPlayers[1], state.Opponent())
		assert.Equal(t, 3, state.BoardSize())
		assert.False(t, state.HasWinner())
		assert.Nil(t, state.WinningCombo())
		assert.False(t, state.IsSinglePlayer())
		assert.Equal(t, StatusReady, state.Status())
	})

	t.Run("Rejects board size below one", func(t *testing.T) {
		_, err := New(entity.DefaultPlayers, 0)

		require.ErrorIs(t, err, ErrInvalidBoardSize)
	})

	t.Run("Rejects players sharing a label", func(t *testing.T) {
		players := [2]entity.Player{{Label: "X"}, {Label: "X"}}

		_, err := New(players, 3)

		require.ErrorIs(t, err, ErrInvalidPlayers)
	})

	t.Run("Rejects a player without label", func(t *testing.T) {
		players := [2]entity.Player{{Label: "X"}, {Label: ""}}

		_, err := New(players, 3)

		require.ErrorIs(t, err, ErrInvalidPlayers)
	})
}

func TestWinningCombos(t *testing.T) {
	t.Run("There are 2N+2 combos of length N", func(t *testing.T) {
		for size := 1; size <= 7; size++ {
			state := newGame(t, size)

			combos := state.Combos()

			require.Len(t, combos, 2*size+2, "board size %d", size)
			for _, combo := range combos {
				assert.Len(t, combo, size)
			}
		}
	})

	t.Run("Combos come as rows, columns, diagonal, anti-diagonal", func(t *testing.T) {
		state := newGame(t, 3)

		combos := state.Combos()

		assert.Equal(t, entity.Combo{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, combos[0])
		assert.Equal(t, entity.Combo{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}, combos[2])
		assert.Equal(t, entity.Combo{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}}, combos[3])
		assert.Equal(t, entity.Combo{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}}, combos[5])
		assert.Equal(t, entity.Combo{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, combos[6])
		assert.Equal(t, entity.Combo{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}}, combos[7])
	})

	t.Run("Modifying returned combos does not affect the game", func(t *testing.T) {
		state := newGame(t, 3)

		combos := state.Combos()
		combos[0][0] = entity.Coord{Row: 2, Col: 2}
		combos[1] = nil

		assert.Equal(t, entity.Combo{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, state.Combos()[0])
		assert.Len(t, state.Combos()[1], 3)
	})
}

func TestState_IsValidMove(t *testing.T) {
	t.Run("Free cell is valid", func(t *testing.T) {
		state := newGame(t, 3)

		assert.True(t, state.IsValidMove(entity.Move{Row: 1, Col: 1, Label: "X"}))
	})

	t.Run("Occupied cell is invalid", func(t *testing.T) {
		// Given: X holds the centre
		state := newGame(t, 3)
		state.ProcessMove(entity.Move{Row: 1, Col: 1, Label: "X"})

		// Then: nobody can play there
		assert.False(t, state.IsValidMove(entity.Move{Row: 1, Col: 1, Label: "O"}))
		assert.False(t, state.IsValidMove(entity.Move{Row: 1, Col: 1, Label: "X"}))
	})

	t.Run("Any cell is invalid after a win", func(t *testing.T) {
		state := newGame(t, 3)
		play(t, state, entity.Coord{Row: 0, Col: 0}, entity.Coord{Row: 1, Col: 1}, entity.Coord{Row: 0, Col: 1}, entity.Coord{Row: 2, Col: 2}, entity.Coord{Row: 0, Col: 2})

		assert.False(t, state.IsValidMove(entity.Move{Row: 2, Col: 0, Label: "O"}))
	})

	t.Run("Turn is not checked", func(t *testing.T) {
		state := newGame(t, 3)

		assert.True(t, state.IsValidMove(entity.Move{Row: 0, Col: 0, Label: "O"}))
	})

	t.Run("Off-board coordinates are invalid", func(t *testing.T) {
		state := newGame(t, 3)

		assert.False(t, state.IsValidMove(entity.Move{Row: -1, Col: 0}))
		assert.False(t, state.IsValidMove(entity.Move{Row: 0, Col: 3}))
	})

	t.Run("Repeated checks do not change the result", func(t *testing.T) {
		state := newGame(t, 3)
		move := entity.Move{Row: 2, Col: 2, Label: "X"}
		before := state.Snapshot()

		for i := 0; i < 5; i++ {
			assert.True(t, state.IsValidMove(move))
		}

		assert.Equal(t, before, state.Snapshot())

		// When: the move is processed
		state.ProcessMove(move)

		// Then: the answer flips
		assert.False(t, state.IsValidMove(move))
	})
}

func TestState_ProcessMove(t *testing.T) {
	t.Run("Top row wins for X", func(t *testing.T) {
		// Given: a 3x3 game
		state := newGame(t, 3)

		// When: X:(0,0) O:(1,1) X:(0,1) O:(2,2) X:(0,2)
		play(t, state, entity.Coord{Row: 0, Col: 0}, entity.Coord{Row: 1, Col: 1}, entity.Coord{Row: 0, Col: 1}, entity.Coord{Row: 2, Col: 2}, entity.Coord{Row: 0, Col: 2})

		// Then: X has won with the top row
		assert.True(t, state.HasWinner())
		assert.True(t, state.IsGameOver())
		assert.False(t, state.IsTied())
		assert.Equal(t, entity.Combo{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, state.WinningCombo())
		assert.Equal(t, "X", state.CurrentPlayer().Label)
		assert.Equal(t, StatusWon, state.Status())
	})

	t.Run("No winner before the fifth move", func(t *testing.T) {
		state := newGame(t, 3)

		play(t, state, entity.Coord{Row: 0, Col: 0}, entity.Coord{Row: 1, Col: 1}, entity.Coord{Row: 0, Col: 1}, entity.Coord{Row: 2, Col: 2})

		assert.False(t, state.HasWinner())
		assert.Nil(t, state.WinningCombo())
		assert.Equal(t, StatusInProgress, state.Status())
	})

	t.Run("Anti-diagonal win for O", func(t *testing.T) {
		state := newGame(t, 3)

		play(t, state, entity.Coord{Row: 0, Col: 0}, entity.Coord{Row: 0, Col: 2}, entity.Coord{Row: 0, Col: 1}, entity.Coord{Row: 1, Col: 1}, entity.Coord{Row: 2, Col: 2}, entity.Coord{Row: 2, Col: 0})

		assert.True(t, state.HasWinner())
		assert.Equal(t, "O", state.CurrentPlayer().Label)
		assert.Equal(t, entity.Combo{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}}, state.WinningCombo())
	})

	t.Run("Column win on a 4x4 board", func(t *testing.T) {
		state := newGame(t, 4)

		play(t, state,
			entity.Coord{Row: 0, Col: 3}, entity.Coord{Row: 0, Col: 0},
			entity.Coord{Row: 1, Col: 3}, entity.Coord{Row: 1, Col: 0},
			entity.Coord{Row: 2, Col: 3}, entity.Coord{Row: 2, Col: 0},
			entity.Coord{Row: 3, Col: 3},
		)

		assert.True(t, state.HasWinner())
		assert.Equal(t, entity.Combo{{Row: 0, Col: 3}, {Row: 1, Col: 3}, {Row: 2, Col: 3}, {Row: 3, Col: 3}}, state.WinningCombo())
	})

	t.Run("First combo in generation order is recorded", func(t *testing.T) {
		// Given: X completes the top row and the first column in one move
		state := newGame(t, 3)
		for _, coord := range []entity.Coord{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 2, Col: 0}} {
			state.ProcessMove(entity.Move{Row: coord.Row, Col: coord.Col, Label: "X"})
		}
		require.False(t, state.HasWinner())

		// When: the shared corner is played
		state.ProcessMove(entity.Move{Row: 0, Col: 0, Label: "X"})

		// Then: the row is reported, rows come before columns
		assert.Equal(t, entity.Combo{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, state.WinningCombo())
	})

	t.Run("A single-cell board is won by the first move", func(t *testing.T) {
		state := newGame(t, 1)

		state.ProcessMove(entity.Move{Row: 0, Col: 0, Label: "X"})

		assert.True(t, state.HasWinner())
		assert.False(t, state.IsTied())
		assert.Equal(t, entity.Combo{{Row: 0, Col: 0}}, state.WinningCombo())
	})

	t.Run("Occupied cell is overwritten", func(t *testing.T) {
		state := newGame(t, 3)
		state.ProcessMove(entity.Move{Row: 0, Col: 0, Label: "X"})

		state.ProcessMove(entity.Move{Row: 0, Col: 0, Label: "O"})

		assert.Equal(t, "O", state.Cell(0, 0).Label)
	})
}

func TestState_IsTied(t *testing.T) {
	tieSequence := []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}

	t.Run("Full board without a line is a tie", func(t *testing.T) {
		// Given: a 3x3 game
		state := newGame(t, 3)

		// When: X:(0,0) O:(0,1) X:(0,2) O:(1,1) X:(1,0) O:(1,2) X:(2,1) O:(2,0) X:(2,2)
		play(t, state, tieSequence...)

		// Then: the game is tied and has no winner
		assert.True(t, state.IsTied())
		assert.False(t, state.HasWinner())
		assert.True(t, state.IsGameOver())
		assert.Equal(t, StatusTied, state.Status())
	})

	t.Run("Partially filled board is not tied", func(t *testing.T) {
		state := newGame(t, 3)

		play(t, state, tieSequence[:8]...)

		assert.False(t, state.IsTied())
		assert.False(t, state.IsGameOver())
	})

	t.Run("Full board with a line is a win, not a tie", func(t *testing.T) {
		state := newGame(t, 3)
		labels := [3][3]string{
			{"X", "X", "X"},
			{"O", "O", "X"},
			{"X", "O", "O"},
		}

		for row := range labels {
			for col := range labels[row] {
				state.ProcessMove(entity.Move{Row: row, Col: col, Label: labels[row][col]})
			}
		}

		assert.True(t, state.HasWinner())
		assert.False(t, state.IsTied())
	})
}

func TestState_Toggle(t *testing.T) {
	// Given: a new game with X on turn
	state := newGame(t, 3)

	// When / Then: the turn alternates indefinitely
	for i := 0; i < 101; i++ {
		expected := entity.DefaultPlayers[i%2]
		assert.Equal(t, expected, state.CurrentPlayer())
		assert.NotEqual(t, expected, state.Opponent())
		state.Toggle()
	}

	assert.Equal(t, entity.DefaultPlayers[1], state.CurrentPlayer())
}

func TestState_Reset(t *testing.T) {
	t.Run("Clears the board and the winner", func(t *testing.T) {
		// Given: a won game
		state := newGame(t, 3)
		play(t, state, entity.Coord{Row: 0, Col: 0}, entity.Coord{Row: 1, Col: 1}, entity.Coord{Row: 0, Col: 1}, entity.Coord{Row: 2, Col: 2}, entity.Coord{Row: 0, Col: 2})
		require.True(t, state.HasWinner())

		// When: the game is reset
		state.Reset()

		// Then: the board is empty with coordinates kept
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				assert.Equal(t, entity.Move{Row: row, Col: col}, state.Cell(row, col))
			}
		}

		assert.False(t, state.HasWinner())
		assert.Nil(t, state.WinningCombo())
		assert.Equal(t, StatusReady, state.Status())
	})

	t.Run("Keeps the current player", func(t *testing.T) {
		// Given: O is on turn
		state := newGame(t, 3)
		play(t, state, entity.Coord{Row: 0, Col: 0})
		require.Equal(t, "O", state.CurrentPlayer().Label)

		// When: the game is reset
		state.Reset()

		// Then: O is still on turn
		assert.Equal(t, "O", state.CurrentPlayer().Label)
	})

	t.Run("Keeps the player mode", func(t *testing.T) {
		state := newGame(t, 3)
		state.SetNumberOfPlayers(entity.SinglePlayer)

		state.Reset()

		assert.True(t, state.IsSinglePlayer())
	})

	t.Run("Replaying the same moves gives the same outcome", func(t *testing.T) {
		sequences := [][]entity.Coord{
			{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 2, Col: 2}, {Row: 0, Col: 2}},
			{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 0}, {Row: 2, Col: 2}},
		}

		for _, sequence := range sequences {
			state := newGame(t, 3)
			play(t, state, sequence...)
			winner, tied, combo := state.HasWinner(), state.IsTied(), state.WinningCombo()

			state.Reset()
			// Rewind the rotation so the same labels land on the same cells.
			for state.CurrentPlayer() != entity.DefaultPlayers[0] {
				state.Toggle()
			}
			play(t, state, sequence...)

			assert.Equal(t, winner, state.HasWinner())
			assert.Equal(t, tied, state.IsTied())
			assert.Equal(t, combo, state.WinningCombo())
		}
	})
}

func TestState_NumberOfPlayers(t *testing.T) {
	state := newGame(t, 3)

	state.SetNumberOfPlayers(1)
	assert.True(t, state.IsSinglePlayer())
	assert.Equal(t, 1, state.NumberOfPlayers())

	state.SetNumberOfPlayers(2)
	assert.False(t, state.IsSinglePlayer())
}

func TestState_Board(t *testing.T) {
	// Given: a game and a copy of its board
	state := newGame(t, 3)
	board := state.Board()

	// When: the copy is modified
	board[0][0].Label = "O"

	// Then: the game is unaffected
	assert.True(t, state.Cell(0, 0).IsEmpty())
}
