package pkg

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status a service-level failure maps to.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NotFound(msg string) *AppError     { return &AppError{Status: http.StatusNotFound, Message: msg} }
func Forbidden(msg string) *AppError    { return &AppError{Status: http.StatusForbidden, Message: msg} }
func Conflict(msg string) *AppError     { return &AppError{Status: http.StatusConflict, Message: msg} }
func Unauthorized(msg string) *AppError { return &AppError{Status: http.StatusUnauthorized, Message: msg} }
func BadRequest(msg string) *AppError   { return &AppError{Status: http.StatusBadRequest, Message: msg} }

// HTTPStatus maps any error to a response status. Unknown errors are
// treated as internal.
func HTTPStatus(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}
