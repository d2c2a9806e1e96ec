package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	errInvalidPayload = errors.New("invalid payload")
	errUnknownAction  = errors.New("unknown action")
	errMissingID      = errors.New("game id is required")
	errMissingCoords  = errors.New("row and col are required")
)

func (that *Server) handleNewGame(ctx context.Context, _ map[string]any) (*entity.View, error) {
	return that.game.NewSession(ctx)
}

func (that *Server) handleState(ctx context.Context, payload map[string]any) (*entity.View, error) {
	id, err := decodeID(payload)
	if err != nil {
		return nil, err
	}

	return that.game.GetSession(ctx, id)
}

func (that *Server) handleTurn(ctx context.Context, payload map[string]any) (*entity.View, error) {
	var req turnRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if req.ID == "" {
		return nil, errMissingID
	}

	if req.Row == nil || req.Col == nil {
		return nil, errMissingCoords
	}

	return that.game.Play(ctx, req.ID, *req.Row, *req.Col)
}

func (that *Server) handleReset(ctx context.Context, payload map[string]any) (*entity.View, error) {
	id, err := decodeID(payload)
	if err != nil {
		return nil, err
	}

	return that.game.Reset(ctx, id)
}

func (that *Server) handlePlayers(ctx context.Context, payload map[string]any) (*entity.View, error) {
	var req playersRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if req.ID == "" {
		return nil, errMissingID
	}

	return that.game.SetNumberOfPlayers(ctx, req.ID, req.Count)
}

func decodeID(payload map[string]any) (string, error) {
	var req gameRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}

	if req.ID == "" {
		return "", errMissingID
	}

	return req.ID, nil
}
