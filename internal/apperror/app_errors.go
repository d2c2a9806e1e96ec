package apperror

import "errors"

var (
	ErrGameFinished            = errors.New("game is already finished")
	ErrCellOccupied            = errors.New("cell is already occupied")
	ErrOutOfBounds             = errors.New("cell is out of the board")
	ErrSessionNotFound         = errors.New("session not found")
	ErrInvalidNumberOfPlayers  = errors.New("number of players must be 1 or 2")
	ErrUnsupportedPresentation = errors.New("unsupported presentation")
)
