package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("already exists")
	ErrNotFound           = errors.New("resource not found")
	ErrAuthRequired       = errors.New("authentication required")
	ErrForbidden          = errors.New("admin access required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInternal           = errors.New("internal server error")
)

// MapErrorToStatus maps service errors to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthRequired), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
