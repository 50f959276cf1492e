package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by stores when a lookup by key misses.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an id cannot be parsed into the store's native identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden is returned when a verified principal does not own the resource.
	ErrForbidden = errors.New("forbidden")
)

// APIError is an error that is safe to show to the client as is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewErrValidation reports malformed client input.
func NewErrValidation(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewErrImageNotFound reports a missing event image.
func NewErrImageNotFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Message: "image not found"}
}

// NewErrStoreUnavailable reports a failed store health check.
func NewErrStoreUnavailable() *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: "store unavailable"}
}
