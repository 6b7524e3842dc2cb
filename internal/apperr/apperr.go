// Package apperr defines the error type handlers hand to the error middleware.
// An *Error carries the HTTP status and the message shown to clients; any other
// error reaching the middleware is treated as an unexpected 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithCode attaches a machine-readable code, e.g. "email_taken".
func (e *Error) WithCode(code string) *Error {
	cp := *e
	cp.Code = code
	return &cp
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap keeps cause for logging while presenting message to the client.
func Wrap(status int, message string, cause error) *Error {
	return &Error{Status: status, Message: message, Err: cause}
}

func BadRequest(message string) *Error      { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error    { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error       { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error        { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error        { return New(http.StatusConflict, message) }
func Unprocessable(message string) *Error   { return New(http.StatusUnprocessableEntity, message) }
func TooManyRequests(message string) *Error { return New(http.StatusTooManyRequests, message) }

func Internal(cause error) *Error {
	return Wrap(http.StatusInternalServerError, "internal server error", cause)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
