package admin

import "errors"

var (
	// ErrInvalidCredentials is returned for any username or password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput indicates a missing username or password.
	ErrInvalidInput = errors.New("username and password are required")
)
