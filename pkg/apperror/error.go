package apperror

import (
	"errors"
	"net/http"
)

// AppError is the tagged failure every service operation reports. Code is the
// HTTP status the handler layer responds with; Err carries the underlying cause
// for logs only.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func Internal(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}

// BadGateway reports a failure of an upstream dependency such as the model API.
func BadGateway(message string, err error) *AppError {
	return New(http.StatusBadGateway, message, err)
}

// From extracts an *AppError from err, falling back to a generic internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal server error", err)
}
