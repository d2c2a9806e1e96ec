package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// maxBodySize bounds request bodies in bytes.
const maxBodySize = 4096

type gameUseCase interface {
	NewSession(ctx context.Context) (*entity.View, error)
	GetSession(ctx context.Context, id string) (*entity.View, error)
	Play(ctx context.Context, id string, row, col int) (*entity.View, error)
	Reset(ctx context.Context, id string) (*entity.View, error)
	SetNumberOfPlayers(ctx context.Context, id string, n int) (*entity.View, error)
	DeleteSession(ctx context.Context, id string) error
}

type GameHandler interface {
	Ping(w http.ResponseWriter, r *http.Request)

	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Play(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	SetPlayers(w http.ResponseWriter, r *http.Request)
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type playersRequest struct {
	Count int `json:"count"`
}

// Response carries the board after the request and, for rejected requests,
// what went wrong. Rejected moves still return the unchanged board.
type Response struct {
	Game  *entity.View `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

type gameHandler struct {
	logger *slog.Logger

	game gameUseCase
}

func NewGameHandler(logger *slog.Logger, game gameUseCase) GameHandler {
	return &gameHandler{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

func (that *gameHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *gameHandler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := that.game.NewSession(r.Context())
	if err != nil {
		that.writeError(w, "Create", nil, err)
		return
	}

	w.Header().Set("Location", "/games/"+view.ID)
	that.writeJSON(w, http.StatusCreated, Response{Game: view})
}

func (that *gameHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := that.game.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "Get", nil, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: view})
}

func (that *gameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := that.game.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "Delete", nil, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := that.decodeBody(w, r, &req); err != nil {
		that.writeBodyError(w, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, Response{Error: "row and col are required"})
		return
	}

	view, err := that.game.Play(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "Play", view, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: view})
}

func (that *gameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := that.game.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "Reset", nil, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: view})
}

func (that *gameHandler) SetPlayers(w http.ResponseWriter, r *http.Request) {
	var req playersRequest
	if err := that.decodeBody(w, r, &req); err != nil {
		that.writeBodyError(w, err)
		return
	}

	view, err := that.game.SetNumberOfPlayers(r.Context(), chi.URLParam(r, "id"), req.Count)
	if err != nil {
		that.writeError(w, "SetPlayers", nil, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: view})
}

func (that *gameHandler) decodeBody(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	return json.NewDecoder(r.Body).Decode(target)
}

func (that *gameHandler) writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		that.writeJSON(w, http.StatusRequestEntityTooLarge, Response{Error: "request body too large"})
		return
	}

	that.writeJSON(w, http.StatusBadRequest, Response{Error: "invalid request body"})
}

func (that *gameHandler) writeError(w http.ResponseWriter, method string, view *entity.View, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, status, Response{Error: "internal server error"})
		return
	}

	that.logger.Debug("request rejected", "method", method, "error", err)
	that.writeJSON(w, status, Response{Game: view, Error: err.Error()})
}

func (that *gameHandler) writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrOutOfBounds), errors.Is(err, apperror.ErrInvalidNumberOfPlayers):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
