package apperror

import "errors"

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrMatchNotFound = errors.New("match not found")
)
