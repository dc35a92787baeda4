package types

import "errors"

// Error kinds. Every garage failure wraps exactly one of these.
var (
	ErrValidation     = errors.New("garage: validation failed")
	ErrCapacity       = errors.New("garage: capacity exceeded")
	ErrDuplicatePlate = errors.New("garage: duplicate license plate")
	ErrNotFound       = errors.New("garage: car not found")
	ErrTemporal       = errors.New("garage: invalid time ordering")
)

// Error is a garage failure with a message meant for the person at the gate.
// Error() returns the message verbatim; errors.Is matches the Kind.
type Error struct {
	Kind    error
	Message string
}

// NewError returns an *Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Validation returns an ErrValidation error.
func Validation(message string) *Error { return NewError(ErrValidation, message) }

// Capacity returns an ErrCapacity error.
func Capacity(message string) *Error { return NewError(ErrCapacity, message) }

// DuplicatePlate returns an ErrDuplicatePlate error.
func DuplicatePlate(message string) *Error { return NewError(ErrDuplicatePlate, message) }

// NotFound returns an ErrNotFound error.
func NotFound(message string) *Error { return NewError(ErrNotFound, message) }

// Temporal returns an ErrTemporal error.
func Temporal(message string) *Error { return NewError(ErrTemporal, message) }
