package service

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an operational error: expected, carrying an HTTP status and a
// message safe to show to the client. Everything else is treated as a
// programming error and collapsed by the error controller.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsAppError unwraps err into an AppError, if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

var (
	ErrUnauthorized = NewAppError(http.StatusUnauthorized, "Please log in to get access to this resource.")
	ErrForbidden    = NewAppError(http.StatusForbidden, "You do not have permission to perform this action.")
	ErrNotFound     = NewAppError(http.StatusNotFound, "No document found with this ID")
	ErrUserNotFound = NewAppError(http.StatusNotFound, "No user found with this ID or email")

	ErrInvalidCredentials = NewAppError(http.StatusUnauthorized, "Incorrect email or password!")
	ErrTokenUserGone      = NewAppError(http.StatusUnauthorized, "The user belonging to this token does no longer exist.")
	ErrPasswordChanged    = NewAppError(http.StatusUnauthorized, "User recently changed password. Please log in again.")
	ErrTokenRevoked       = NewAppError(http.StatusUnauthorized, "This token has been revoked. Please log in again.")
)
