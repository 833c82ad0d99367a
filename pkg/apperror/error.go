package apperror

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	// FallbackToManual tells the client to offer its manual alternative
	// (e.g. a direct link to the Google listing).
	FallbackToManual bool `json:"fallbackToManual,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithFallback marks the error as one the client should answer with its manual fallback.
func (e *AppError) WithFallback() *AppError {
	e.FallbackToManual = true
	return e
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

func Unavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// FromStatus builds an error mirroring an upstream status. Statuses outside
// 400..599 are reported as 500.
func FromStatus(status int, message string, err error) *AppError {
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusInternalServerError
	}
	return New(status, message, err)
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
