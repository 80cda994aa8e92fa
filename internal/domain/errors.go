package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a missing directory, asset, or sidecar
	NotFoundError struct {
		Message string
	}

	// CorruptDataError indicates a sidecar whose content is unparsable
	CorruptDataError struct {
		Message string
	}

	// IOError indicates a filesystem write/move failure
	// (permissions, disk full, cross-device move)
	IOError struct {
		Message string
	}

	// ValidationError indicates invalid caller input
	// (unrecognized location tag, empty filename)
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *CorruptDataError) Error() string  { return e.Message }
func (e *IOError) Error() string           { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *CorruptDataError) StatusCode() int  { return http.StatusInternalServerError }
func (e *IOError) StatusCode() int           { return http.StatusInternalServerError }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrCorruptData  = errors.New("corrupt data")
	ErrIO           = errors.New("io failure")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Is implementations let errors.Is() match typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *CorruptDataError) Is(target error) bool  { return target == ErrCorruptData }
func (e *IOError) Is(target error) bool           { return target == ErrIO }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
