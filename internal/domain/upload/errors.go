package upload

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFile indicates the request carried no file.
	ErrMissingFile = errors.New("no file uploaded")
	// ErrInvalidKind indicates a kind other than image or audio.
	ErrInvalidKind = errors.New("invalid upload type")
	// ErrFileTooLarge indicates the file exceeds the size ceiling.
	ErrFileTooLarge = errors.New("file too large")
	// ErrUnsupportedType indicates the MIME type is not on the kind's allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// IsValidation reports whether err rejects the request before any write.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrUnsupportedType)
}

// Error is a storage failure during upload. Indeterminate is set when the
// request was cancelled after the write was sent, so the object may exist.
type Error struct {
	Key           string
	Indeterminate bool
	Err           error
}

func (e *Error) Error() string {
	if e.Indeterminate {
		return fmt.Sprintf("upload of %s cancelled, outcome unknown: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("upload of %s failed: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
