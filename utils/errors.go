package utils

import (
	"errors"
	"fmt"
)

var (
	ErrUserIDNotFound = errors.New("authentication required: user ID not found")

	// Error kinds raised by the booking core. Match with errors.Is.
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnavailableBooking = errors.New("unavailable booking")
	ErrConflict           = errors.New("conflict")
)

// kindError carries a user-facing message and the kind it belongs to.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func NotFound(format string, args ...any) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &kindError{kind: ErrForbidden, msg: fmt.Sprintf(format, args...)}
}

func UnavailableBooking(format string, args ...any) error {
	return &kindError{kind: ErrUnavailableBooking, msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &kindError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}
