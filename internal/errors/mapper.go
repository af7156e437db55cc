package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// APIError carries an HTTP status alongside a client-safe message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Map converts repo/infra errors into APIErrors.
// Keeps service layer clean by centralizing error mapping. Store internals
// never reach the client; unknown errors collapse to a generic message.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &APIError{Status: http.StatusNotFound, Message: "record not found"}

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &APIError{Status: http.StatusConflict, Message: "already exists"}

	case errors.Is(err, context.DeadlineExceeded):
		return &APIError{Status: http.StatusGatewayTimeout, Message: "request timed out"}

	case errors.Is(err, context.Canceled):
		return &APIError{Status: 499, Message: "request was canceled"}

	default:
		return &APIError{Status: http.StatusInternalServerError, Message: "internal server error"}
	}
}

// InvalidArgument creates a 400 error for bad input validation.
func InvalidArgument(msg string) error {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

// NotFound creates a 404 error.
func NotFound(msg string) error {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(msg string) error {
	return &APIError{Status: http.StatusConflict, Message: msg}
}
