// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-offload.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrPoolUnavailable = fmt.Errorf("worker pool not configured")
	ErrQueueFull       = fmt.Errorf("task queue is full")
	ErrLoopStopped     = fmt.Errorf("event loop is stopped")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeConfig
	ErrCodeResourceExhausted
	ErrCodeInvariant
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
