// Package errors provides the application error taxonomy for the lab service.
// Service-layer failures are expressed as *AppError so the request boundary can
// turn them into a flash message or a JSON body without leaking internal details.
package errors

import (
	"errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// HasCode reports whether err is an *AppError carrying the sentinel's code.
func HasCode(err error, sentinel *AppError) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == sentinel.Code
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrRateLimited    = &AppError{Code: "RATE_LIMITED", Message: "Too many requests, please slow down", StatusCode: http.StatusTooManyRequests}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Computer user errors.
var (
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateStudentID = &AppError{Code: "DUPLICATE_STUDENT_ID", Message: "Student ID already exists", StatusCode: http.StatusConflict}
)

// Computer unit errors.
var (
	ErrUnitNotFound    = &AppError{Code: "UNIT_NOT_FOUND", Message: "Computer unit not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUnitID = &AppError{Code: "DUPLICATE_UNIT_ID", Message: "Unit ID already exists", StatusCode: http.StatusConflict}
)

// Kiosk errors.
var (
	ErrStudentNotRegistered = &AppError{Code: "USER_NOT_FOUND", Message: "Student ID not found. Please contact the administrator to be registered.", StatusCode: http.StatusNotFound}
	ErrUnitUnavailable      = &AppError{Code: "UNIT_UNAVAILABLE", Message: "Selected PC is no longer available. Please pick another one.", StatusCode: http.StatusConflict}
	ErrNotSignedIn          = &AppError{Code: "NOT_SIGNED_IN", Message: "You are not signed in to any PC.", StatusCode: http.StatusBadRequest}
)
