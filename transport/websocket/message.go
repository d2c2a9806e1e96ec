package websocket

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionNewGame = "game:new"
	actionState   = "game:state"
	actionTurn    = "game:turn"
	actionReset   = "game:reset"
	actionPlayers = "game:players"
)

// Message is what clients send: an action and its loosely typed payload.
type Message struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Response answers every message with the same action.
type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}

type ResponsePayload struct {
	Game  *entity.View `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

type gameRequest struct {
	ID string `mapstructure:"id"`
}

type turnRequest struct {
	ID  string `mapstructure:"id"`
	Row *int   `mapstructure:"row"`
	Col *int   `mapstructure:"col"`
}

type playersRequest struct {
	ID    string `mapstructure:"id"`
	Count int    `mapstructure:"count"`
}

func decodePayload(payload map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: wholeNumberHook,
		Result:     target,
	})
	if err != nil {
		return fmt.Errorf("failed to create payload decoder: %w", err)
	}

	if err = decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	return nil
}

// wholeNumberHook only lets JSON numbers into int fields when they are whole
// and fit; mapstructure would truncate 0.9 to 0 otherwise.
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 || to.Kind() != reflect.Int {
		return data, nil
	}

	number, ok := data.(float64)
	if !ok {
		return data, nil
	}

	if number != math.Trunc(number) || number < math.MinInt64 || number >= math.MaxInt64 {
		return nil, fmt.Errorf("%v is not a whole number", number)
	}

	return int(number), nil
}
