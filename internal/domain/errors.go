package domain

import (
	"errors"
	"fmt"
)

// StatusError is a pipeline stage failure carrying an outward status code.
type StatusError struct {
	Code   string
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// NewStatusError builds a StatusError with the canonical message for code.
func NewStatusError(code string) *StatusError {
	return &StatusError{Code: code, Reason: StatusMessage(code)}
}

// NewStatusErrorf appends a formatted detail to the canonical message.
func NewStatusErrorf(code, format string, args ...any) *StatusError {
	return &StatusError{
		Code:   code,
		Reason: StatusMessage(code) + ": " + fmt.Sprintf(format, args...),
	}
}

// AsStatusError unwraps err into a StatusError, falling back to SY03.
func AsStatusError(err error) *StatusError {
	var se *StatusError
	if errors.As(err, &se) {
		return se
	}
	return NewStatusError(CodeMalformed)
}
