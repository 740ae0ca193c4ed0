package setting

import "errors"

// ErrInvalidInput indicates an unknown key or malformed settings payload.
var ErrInvalidInput = errors.New("invalid settings input")
