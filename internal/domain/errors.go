package domain

import (
	"errors"
	"net/http"
)

// Error is a typed business error. Handlers map Status straight to the
// HTTP response code; everything else is treated as a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewValidationError(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func NewBusinessError(msg string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// AsError unwraps err into *Error if it is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
