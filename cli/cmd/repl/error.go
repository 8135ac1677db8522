package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrUsage       = errors.New("usage")
	ErrUnknown     = errors.New("unknown command")
)

// Control results returned by commands in place of output.
var (
	errQuit  = errors.New("quit")
	errClear = errors.New("clear")
)
