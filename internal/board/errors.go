package board

import "errors"

var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidMove   = errors.New("invalid move")
	// ErrMoveListFull is returned when a generator would exceed MaxMoves.
	ErrMoveListFull = errors.New("move list full")
)
