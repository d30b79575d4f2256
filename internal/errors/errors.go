// Package errors defines stable error codes and the typed error used
// across etlmap. All failure modes surfaced by the API or recorded in a
// run's error list carry one of these codes.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseFailed indicates the repository XML could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// GeneratorUnavailable indicates the text-generation service failed
	GeneratorUnavailable ErrorCode = "GENERATOR_UNAVAILABLE"
	// ReportWriteFailed indicates the rendered report could not be written
	ReportWriteFailed ErrorCode = "REPORT_WRITE_FAILED"
	// SessionNotFound indicates the requested session does not exist
	SessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	// ScopeInvalid indicates an invalid request parameter
	ScopeInvalid ErrorCode = "SCOPE_INVALID"
	// RateLimited indicates too many concurrent requests
	RateLimited ErrorCode = "RATE_LIMITED"
	// Unauthorized indicates a missing or invalid API token
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// StorageFailed indicates the run store rejected a read or write
	StorageFailed ErrorCode = "STORAGE_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Error is an etlmap error with a stable code and optional cause.
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a new Error wrapping an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}
