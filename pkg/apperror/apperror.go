// Package apperror defines the error categories the service layer reports to
// handlers, each mapped to one HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type is the category of an application error.
type Type string

const (
	TypeValidation   Type = "validation"
	TypeUnauthorized Type = "unauthorized"
	TypeForbidden    Type = "forbidden"
	TypeNotFound     Type = "not_found"
	TypeConflict     Type = "conflict"
	TypeExternal     Type = "external"
	TypeInternal     Type = "internal"
)

// Error is a categorised error. Fields carries per-field validation messages.
type Error struct {
	Type    Type
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Type: TypeValidation, Message: message, Fields: fields}
}

func Unauthorized(message string) *Error {
	return &Error{Type: TypeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Type: TypeForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

func External(message string, cause error) *Error {
	return &Error{Type: TypeExternal, Message: message, Cause: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an *Error of type t.
func Is(err error, t Type) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// HTTPStatus maps any error to a status code; uncategorised errors are 500.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
