package apperr

import (
	"errors"
	"fmt"
)

// Error kinds shared by every service. Callers map them onto transport
// status codes: NotFound -> 404, InvalidState -> 400, Conflict -> 409.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

// NotFoundf wraps ErrNotFound with a reason.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidStatef wraps ErrInvalidState with a reason.
func InvalidStatef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidState)...)
}

// Conflictf wraps ErrConflict with a reason.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
