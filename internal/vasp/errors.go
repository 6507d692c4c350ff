package vasp

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code shared across adapters.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeFileNotFound Code = "FILE_NOT_FOUND"
	CodeFileNotFile  Code = "FILE_NOT_FILE"
	CodeParse        Code = "PARSE_ERROR"
	CodeIO           Code = "IO_ERROR"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// Error is the structured error type for parse, IO and validation failures.
type Error struct {
	Code    Code
	Message string
	Details map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewParseError reports that input text does not satisfy the minimal
// validity guard or that a block is internally inconsistent.
func NewParseError(format string, args ...any) *Error {
	return &Error{Code: CodeParse, Message: fmt.Sprintf(format, args...)}
}

// NewIOError reports that a file could not be read from storage.
func NewIOError(message, path string, cause error) *Error {
	return &Error{
		Code:    CodeIO,
		Message: message,
		Details: map[string]string{"path": path},
		cause:   cause,
	}
}

// NewValidationError reports invalid caller-supplied payload data.
func NewValidationError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns a copy of e carrying the given details map.
func (e *Error) WithDetails(details map[string]string) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// IsParseError reports whether err carries the PARSE_ERROR code.
func IsParseError(err error) bool { return hasCode(err, CodeParse) }

// IsIOError reports whether err carries the IO_ERROR code.
func IsIOError(err error) bool { return hasCode(err, CodeIO) }

// IsValidationError reports whether err is a validation-class failure
// (bad payload, missing file, or non-file path).
func IsValidationError(err error) bool {
	return hasCode(err, CodeValidation) || hasCode(err, CodeFileNotFound) || hasCode(err, CodeFileNotFile)
}

func hasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// AppError is the transport-neutral error payload serialized to callers.
type AppError struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// NormalizeError maps an arbitrary failure to a stable AppError. Typed
// errors keep their code; anything else is INTERNAL_ERROR.
func NormalizeError(err error) AppError {
	var e *Error
	if errors.As(err, &e) {
		return AppError{Code: e.Code, Message: e.Error(), Details: e.Details}
	}
	return AppError{Code: CodeInternal, Message: err.Error()}
}
