package apperror

import "errors"

var (
	ErrInvalidDepth = errors.New("board depth must be at least 1")
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidPath  = errors.New("invalid move path")
)
