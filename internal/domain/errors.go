package domain

import "errors"

// Error kinds. Services wrap these with a human-readable reason so callers
// can branch on the kind with errors.Is while the reason (ownership vs
// window expiry, for instance) survives to the response body.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func NotFound(message string) error {
	return &Error{kind: ErrNotFound, message: message}
}

func Forbidden(message string) error {
	return &Error{kind: ErrForbidden, message: message}
}

func InvalidInput(message string) error {
	return &Error{kind: ErrInvalidInput, message: message}
}

func Unauthorized(message string) error {
	return &Error{kind: ErrUnauthorized, message: message}
}
