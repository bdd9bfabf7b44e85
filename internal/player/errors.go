package player

import "errors"

var (
	ErrNoSession    = errors.New("player: no session loaded")
	ErrOutOfRange   = errors.New("player: step index out of range")
	ErrInvalidSpeed = errors.New("player: speed factor must be a positive number")
)
