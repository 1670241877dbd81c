package training

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means there is no plan (or no training day) for the given key.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks missing or malformed user input, caught before submission.
	ErrValidation = errors.New("validation failed")
	// ErrOutOfRange marks a difficulty or hour value outside its legal bounds.
	ErrOutOfRange = errors.New("out of range")
	// ErrDivisionByZero is returned by averages over an empty schedule.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrTransport marks a network or plan service failure.
	ErrTransport = errors.New("plan service unavailable")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
