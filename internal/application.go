package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/opponent"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-engine/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	sessionRepo, closeStore, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	gameManager := usecase.NewGameManager(logger, sessionRepo, opponent.New(), usecase.Settings{
		Players:         conf.GamePlayers(),
		BoardSize:       conf.Board.Size,
		NumberOfPlayers: conf.Board.NumberOfPlayers,
	})

	switch conf.Presentation {
	case config.PresentationTerminal:
		log.Info("Starting terminal game")
		if err = terminal.New(logger, gameManager, os.Stdin, os.Stdout).Run(ctx); err != nil {
			return fmt.Errorf("terminal game error: %w", err)
		}
	case config.PresentationHTTP:
		router := rest.NewRouter(rest.NewGameHandler(logger, gameManager), websocket.New(logger, gameManager))
		if err = rest.Start(ctx, logger, conf.HTTPPort, router); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnsupportedPresentation, conf.Presentation)
	}

	log.Info("Application stopped")

	return nil
}

// newSessionRepository connects to redis when it is configured and keeps
// sessions in memory otherwise.
func newSessionRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	if !conf.Redis.Enabled() {
		log.Info("Redis is not configured, keeping sessions in memory")
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStore := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewSessionRepository(redisStorage, conf.Redis.SessionTTL), closeStore, nil
}
