// Package apperror defines the error kinds the API distinguishes and their HTTP mapping.
package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUpstream     = errors.New("upstream failure")
)

// InternalMessage is what clients see for any failure that is not an AppError.
const InternalMessage = "Internal Server Error"

type AppError struct {
	Err     error  // sentinel kind
	Message string // human-readable, safe to return to clients
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

func BadRequest(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// Upstream hides the cause of an external service failure behind a fixed message.
func Upstream(message string) *AppError {
	return &AppError{Err: ErrUpstream, Message: message}
}

// Status maps err to an HTTP status and the message to show the client.
func Status(err error) (int, string) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, InternalMessage
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, appErr.Message
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, appErr.Message
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, appErr.Message
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, appErr.Message
	default:
		return http.StatusInternalServerError, appErr.Message
	}
}
