package beat

import "errors"

var (
	// ErrBeatNotFound indicates the beat doesn't exist.
	ErrBeatNotFound = errors.New("beat not found")
	// ErrInvalidInput indicates invalid beat input.
	ErrInvalidInput = errors.New("invalid beat input")
)
