package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameUseCase interface {
	NewSession(ctx context.Context) (*entity.View, error)
	GetSession(ctx context.Context, id string) (*entity.View, error)
	Play(ctx context.Context, id string, row, col int) (*entity.View, error)
	Reset(ctx context.Context, id string) (*entity.View, error)
	SetNumberOfPlayers(ctx context.Context, id string, n int) (*entity.View, error)
}

// maxMessageSize bounds a single client message in bytes.
const maxMessageSize = 4096

type handlerFunc func(ctx context.Context, payload map[string]any) (*entity.View, error)

// Server speaks the game protocol over a websocket connection. Each client
// message gets exactly one reply carrying the board after the action.
type Server struct {
	logger *slog.Logger
	game   gameUseCase

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionNewGame: server.handleNewGame,
		actionState:   server.handleState,
		actionTurn:    server.handleTurn,
		actionReset:   server.handleReset,
		actionPlayers: server.handlePlayers,
	}

	return server
}

// ServeHTTP upgrades the request and handles messages until the client goes away.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("websocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	log.Info("websocket connection closed", "remote", r.RemoteAddr)
}

func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}

			return nil
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			if err = that.reply(conn, "", nil, errInvalidPayload); err != nil {
				return err
			}

			continue
		}

		view, err := that.dispatch(ctx, &message)
		if err = that.reply(conn, message.Action, view, err); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) (*entity.View, error) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return nil, errUnknownAction
	}

	return handler(ctx, message.Payload)
}

func (that *Server) reply(conn *websocket.Conn, action string, view *entity.View, err error) error {
	payload := ResponsePayload{Game: view}

	if err != nil {
		if isClientError(err) {
			that.logger.Debug("message rejected", "action", action, "error", err)
			payload.Error = err.Error()
		} else {
			that.logger.Error("failed to process message", "action", action, "error", err)
			payload.Error = "internal server error"
		}
	}

	return conn.WriteJSON(Response{Action: action, Payload: payload})
}

func isClientError(err error) bool {
	for _, target := range []error{
		apperror.ErrSessionNotFound,
		apperror.ErrCellOccupied,
		apperror.ErrGameFinished,
		apperror.ErrOutOfBounds,
		apperror.ErrInvalidNumberOfPlayers,
		errInvalidPayload,
		errUnknownAction,
		errMissingID,
		errMissingCoords,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
