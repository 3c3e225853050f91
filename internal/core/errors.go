package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrChartUnavailable = errors.New("chart service unavailable")
)

// InputError is a client mistake. It maps to a 4xx response and is not a system fault.
type InputError struct {
	Message string
	Details string
}

func (e *InputError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func NewInputError(message string, details ...string) *InputError {
	e := &InputError{Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// AsInputError extracts the InputError from a chain.
func AsInputError(err error) (*InputError, bool) {
	var ie *InputError
	ok := errors.As(err, &ie)
	return ie, ok
}
