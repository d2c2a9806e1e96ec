package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
	"github.com/rocketscienceinc/tictactoe-engine/internal/opponent"
)

const (
	StatusReady = "Ready?"
	StatusTied  = "Tied game!"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type opponentStrategy interface {
	ComputeNextMove(board opponent.Board) (entity.Move, error)
}

// Settings describe the game every new session starts with.
type Settings struct {
	Players         [2]entity.Player
	BoardSize       int
	NumberOfPlayers int
}

// GameManager drives sessions: it gates human moves, lets the computer
// answer in single-player mode and keeps the status line. All operations
// are serialized.
type GameManager struct {
	logger *slog.Logger

	mu sync.Mutex

	sessionRepo sessionRepo
	opponent    opponentStrategy
	settings    Settings
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, strategy opponentStrategy, settings Settings) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		opponent:    strategy,
		settings:    settings,
	}
}

// NewSession starts a fresh board.
func (that *GameManager) NewSession(ctx context.Context) (*entity.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := game.New(that.settings.Players, that.settings.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if that.settings.NumberOfPlayers != 0 {
		state.SetNumberOfPlayers(that.settings.NumberOfPlayers)
	}

	session := &entity.Session{
		ID:          uuid.NewString(),
		Status:      StatusReady,
		StatusColor: entity.ColorDefault,
	}

	if err = that.saveSession(ctx, session, state); err != nil {
		return nil, err
	}

	that.logger.Info("session created", "sessionID", session.ID, "boardSize", state.BoardSize())

	return buildView(session, state), nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, state, err := that.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return buildView(session, state), nil
}

// Play makes the current player's move at (row, col). In single-player mode
// the computer answers straight away unless the move ended the game.
//
// Rejected moves return the unchanged view together with the error.
func (that *GameManager) Play(ctx context.Context, id string, row, col int) (*entity.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Play", "sessionID", id)

	session, state, err := that.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if row < 0 || row >= state.BoardSize() || col < 0 || col >= state.BoardSize() {
		return buildView(session, state), fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfBounds, row, col)
	}

	if state.IsGameOver() {
		return buildView(session, state), apperror.ErrGameFinished
	}

	move := entity.Move{Row: row, Col: col, Label: state.CurrentPlayer().Label}
	if !state.IsValidMove(move) {
		return buildView(session, state), fmt.Errorf("%w: (%d,%d)", apperror.ErrCellOccupied, row, col)
	}

	that.applyMove(session, state, move)
	log.Debug("move played", "row", row, "col", col, "label", move.Label)

	if state.IsSinglePlayer() && !state.IsGameOver() {
		computerMove, err := that.opponent.ComputeNextMove(state)
		if err != nil {
			return nil, fmt.Errorf("failed to compute computer move: %w", err)
		}

		that.applyMove(session, state, computerMove)
		log.Debug("computer move played", "row", computerMove.Row, "col", computerMove.Col, "label", computerMove.Label)
	}

	if err = that.saveSession(ctx, session, state); err != nil {
		return nil, err
	}

	if state.IsGameOver() {
		log.Info("game over", "status", session.Status)
	}

	return buildView(session, state), nil
}

// Reset clears the board for another round. The player on turn stays on turn.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, state, err := that.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	resetBoard(session, state)

	if err = that.saveSession(ctx, session, state); err != nil {
		return nil, err
	}

	return buildView(session, state), nil
}

// SetNumberOfPlayers resets the board and switches between playing the
// computer (1) and two humans (2).
func (that *GameManager) SetNumberOfPlayers(ctx context.Context, id string, n int) (*entity.View, error) {
	if n != entity.SinglePlayer && n != entity.TwoPlayers {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidNumberOfPlayers, n)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, state, err := that.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	resetBoard(session, state)
	state.SetNumberOfPlayers(n)

	if err = that.saveSession(ctx, session, state); err != nil {
		return nil, err
	}

	that.logger.Info("number of players changed", "sessionID", id, "players", n)

	return buildView(session, state), nil
}

func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "sessionID", id)

	return nil
}

// applyMove plays an already validated move and updates the status line:
// a tie or a win ends the game, anything else passes the turn.
func (that *GameManager) applyMove(session *entity.Session, state *game.State, move entity.Move) {
	state.ProcessMove(move)

	switch {
	case state.IsTied():
		session.Status = StatusTied
		session.StatusColor = entity.ColorHighlight
	case state.HasWinner():
		winner := state.CurrentPlayer()
		session.Status = fmt.Sprintf("Player %q won!", winner.Label)
		session.StatusColor = winner.Color
	default:
		state.Toggle()
		session.Status = fmt.Sprintf("%s's turn", state.CurrentPlayer().Label)
		session.StatusColor = entity.ColorDefault
	}
}

func resetBoard(session *entity.Session, state *game.State) {
	state.Reset()
	session.Status = StatusReady
	session.StatusColor = entity.ColorDefault
}

func (that *GameManager) loadSession(ctx context.Context, id string) (*entity.Session, *game.State, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			return nil, nil, fmt.Errorf("session %s: %w", id, err)
		}

		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	state, err := game.Restore(session.Game)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	return session, state, nil
}

func (that *GameManager) saveSession(ctx context.Context, session *entity.Session, state *game.State) error {
	session.Game = state.Snapshot()

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
