package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/render"
)

const (
	commandAgain  = "again"
	commandSingle = "single"
	commandTwo    = "two"
	commandQuit   = "quit"
	commandHelp   = "help"

	prompt = "> "
	help   = `Commands:
  <row> <col>  play the cell, e.g. "1 1" for the centre
  again        clear the board and play again
  single       play against the computer
  two          two players on this terminal
  quit         leave the game`
)

var errUnknownCommand = errors.New("unknown command")

type gameUseCase interface {
	NewSession(ctx context.Context) (*entity.View, error)
	Play(ctx context.Context, id string, row, col int) (*entity.View, error)
	Reset(ctx context.Context, id string) (*entity.View, error)
	SetNumberOfPlayers(ctx context.Context, id string, n int) (*entity.View, error)
	DeleteSession(ctx context.Context, id string) error
}

// Terminal plays one session on a line based terminal.
type Terminal struct {
	logger *slog.Logger
	game   gameUseCase

	in       io.Reader
	out      io.Writer
	renderer *render.Renderer
}

func New(logger *slog.Logger, game gameUseCase, in io.Reader, out io.Writer, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{
		logger:   logger.With("component", "terminal"),
		game:     game,
		in:       in,
		out:      out,
		renderer: render.New(out, opts...),
	}
}

// Run plays until the user quits, input ends or ctx is cancelled.
func (that *Terminal) Run(ctx context.Context) error {
	view, err := that.game.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	defer func() {
		if err := that.game.DeleteSession(context.WithoutCancel(ctx), view.ID); err != nil {
			that.logger.Warn("failed to delete session", "sessionID", view.ID, "error", err)
		}
	}()

	that.println(help)
	if err = that.show(view); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	lines := that.readLines(done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			command := strings.ToLower(strings.TrimSpace(line))
			if command == commandQuit {
				return nil
			}

			if command == "" {
				that.print(prompt)
				continue
			}

			if command == commandHelp {
				that.println(help)
				that.print(prompt)
				continue
			}

			next, err := that.execute(ctx, view.ID, command)
			if err != nil {
				if !isUserError(err) {
					return err
				}

				that.println("Error: " + err.Error())
			}

			if next != nil {
				view = next
			}

			if err = that.show(view); err != nil {
				return err
			}
		}
	}
}

func (that *Terminal) execute(ctx context.Context, id, command string) (*entity.View, error) {
	switch command {
	case commandAgain:
		return that.game.Reset(ctx, id)
	case commandSingle:
		return that.game.SetNumberOfPlayers(ctx, id, entity.SinglePlayer)
	case commandTwo:
		return that.game.SetNumberOfPlayers(ctx, id, entity.TwoPlayers)
	}

	row, col, err := parseCell(command)
	if err != nil {
		return nil, err
	}

	return that.game.Play(ctx, id, row, col)
}

func (that *Terminal) show(view *entity.View) error {
	if err := that.renderer.Render(view); err != nil {
		return err
	}

	that.print(prompt)

	return nil
}

// readLines feeds input lines to the game loop so a blocked read never
// holds up cancellation.
func (that *Terminal) readLines(done <-chan struct{}) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}

		if err := scanner.Err(); err != nil {
			that.logger.Error("failed to read input", "error", err)
		}
	}()

	return lines
}

func (that *Terminal) print(s string) {
	if _, err := io.WriteString(that.out, s); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *Terminal) println(s string) {
	that.print(s + "\n")
}

func parseCell(command string) (int, int, error) {
	fields := strings.Fields(command)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errUnknownCommand, command)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errUnknownCommand, command)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errUnknownCommand, command)
	}

	return row, col, nil
}

func isUserError(err error) bool {
	return errors.Is(err, errUnknownCommand) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrOutOfBounds) ||
		errors.Is(err, apperror.ErrGameFinished)
}
