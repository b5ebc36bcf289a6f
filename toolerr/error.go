// Package toolerr provides structured error types for reviewkit adapters.
//
// This package defines standard error codes and a structured Error type
// that includes adapter context, operation details, error codes, and cause chains.
// It integrates with Go's standard errors package for error wrapping and unwrapping.
package toolerr

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error codes used across adapters for consistent error reporting.
const (
	// ErrCodeProcessFailed indicates the external tool exited with a non-zero status
	ErrCodeProcessFailed = "PROCESS_FAILED"

	// ErrCodeAbort indicates the external tool asked for the whole batch to be aborted
	ErrCodeAbort = "ABORT"

	// ErrCodeMalformedOutput indicates tool output is not valid per its wire format
	ErrCodeMalformedOutput = "MALFORMED_OUTPUT"

	// ErrCodeUnknownSeverity indicates a diagnostic used an unrecognized severity token
	ErrCodeUnknownSeverity = "UNKNOWN_SEVERITY"

	// ErrCodeCoverageParse indicates a coverage report is present but structurally invalid
	ErrCodeCoverageParse = "COVERAGE_PARSE"

	// ErrCodeBinaryNotFound indicates a required binary is not in PATH
	ErrCodeBinaryNotFound = "BINARY_NOT_FOUND"

	// ErrCodeExecutionFailed indicates the command could not be executed at all
	ErrCodeExecutionFailed = "EXECUTION_FAILED"

	// ErrCodeTimeout indicates an operation timed out
	ErrCodeTimeout = "TIMEOUT"

	// ErrCodeInvalidInput indicates invalid input parameters
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// Error is a structured error type for adapter operations.
// It provides context about which adapter and operation failed,
// includes a standard error code, and can wrap underlying errors.
type Error struct {
	// Tool is the name of the adapter or external tool that generated the error
	Tool string

	// Operation is the specific operation that failed
	Operation string

	// Code is a standard error code constant
	Code string

	// Message is a human-readable error message. For ABORT errors it is the
	// text the external tool supplied, unchanged.
	Message string

	// Details contains additional context as key-value pairs
	Details map[string]any

	// Cause is the underlying error that caused this error
	Cause error

	// Class categorizes the error by its nature
	Class ErrorClass `json:"class,omitempty"`
}

// New creates a new structured error.
//
// Example:
//
//	err := toolerr.New("ExtJson", "lint", toolerr.ErrCodeInvalidInput, "script is required")
func New(tool, operation, code, message string) *Error {
	return &Error{
		Tool:      tool,
		Operation: operation,
		Code:      code,
		Message:   message,
	}
}

// WithCause adds an underlying error to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails adds additional context to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithClass sets the error classification.
// This method returns the same error instance for method chaining.
func (e *Error) WithClass(class ErrorClass) *Error {
	e.Class = class
	return e
}

// Error implements the error interface.
// It formats the error as: "tool [operation/code]: message: cause"
//
// Examples:
//   - "ExtJson [parse/ABORT]: database is locked"
//   - "ExtJson [lint/PROCESS_FAILED]: process exited with status 2: boom"
func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%s [%s/%s]", e.Tool, e.Operation, e.Code))

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause error.
// This enables errors.Is() and errors.As() to work with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
// An Error matches the sentinel registered for its code (for example
// ErrAbort for ABORT), and matches another *Error with the same Tool,
// Operation and Code.
func (e *Error) Is(target error) bool {
	if sentinel, ok := codeSentinels[e.Code]; ok && sentinel == target {
		return true
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Tool == t.Tool && e.Operation == t.Operation && e.Code == t.Code
}

// As implements error type assertion for errors.As().
func (e *Error) As(target any) bool {
	t, ok := target.(**Error)
	if !ok {
		return false
	}
	*t = e
	return true
}

// HasCode reports whether err is, or wraps, an *Error with the given code.
func HasCode(err error, code string) bool {
	var te *Error
	if !errors.As(err, &te) {
		return false
	}
	return te.Code == code
}

// Sentinel errors, one per error kind. Every *Error matches the sentinel
// for its code via errors.Is.
var (
	// ErrProcessFailed is matched by PROCESS_FAILED errors
	ErrProcessFailed = errors.New("process failed")

	// ErrAbort is matched by ABORT errors
	ErrAbort = errors.New("aborted by tool")

	// ErrMalformedOutput is matched by MALFORMED_OUTPUT errors
	ErrMalformedOutput = errors.New("malformed tool output")

	// ErrUnknownSeverity is matched by UNKNOWN_SEVERITY errors
	ErrUnknownSeverity = errors.New("unknown severity")

	// ErrCoverageParse is matched by COVERAGE_PARSE errors
	ErrCoverageParse = errors.New("coverage report parse error")

	// ErrBinaryNotFound is matched by BINARY_NOT_FOUND errors
	ErrBinaryNotFound = errors.New("binary not found")

	// ErrTimeout is matched by TIMEOUT errors
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidInput is matched by INVALID_INPUT errors
	ErrInvalidInput = errors.New("invalid input")
)

var codeSentinels = map[string]error{
	ErrCodeProcessFailed:   ErrProcessFailed,
	ErrCodeAbort:           ErrAbort,
	ErrCodeMalformedOutput: ErrMalformedOutput,
	ErrCodeUnknownSeverity: ErrUnknownSeverity,
	ErrCodeCoverageParse:   ErrCoverageParse,
	ErrCodeBinaryNotFound:  ErrBinaryNotFound,
	ErrCodeTimeout:         ErrTimeout,
	ErrCodeInvalidInput:    ErrInvalidInput,
}

// ProcessFailed builds a PROCESS_FAILED error carrying the captured stderr.
func ProcessFailed(tool, operation string, exitCode int, stderr []byte) *Error {
	text := strings.TrimSpace(string(stderr))
	msg := fmt.Sprintf("process exited with status %d", exitCode)
	if text != "" {
		msg += ": " + text
	}
	return New(tool, operation, ErrCodeProcessFailed, msg).
		WithDetails(map[string]any{
			"exit_code": exitCode,
			"stderr":    string(stderr),
		}).
		WithClass(ErrorClassInfrastructure)
}

// Abort builds an ABORT error. text is surfaced verbatim as the message.
func Abort(tool, operation, text string) *Error {
	return New(tool, operation, ErrCodeAbort, text).
		WithClass(ErrorClassPermanent)
}

// MalformedOutput builds a MALFORMED_OUTPUT error.
func MalformedOutput(tool, operation, message string, cause error) *Error {
	return New(tool, operation, ErrCodeMalformedOutput, message).
		WithCause(cause).
		WithClass(ErrorClassSemantic)
}

// UnknownSeverity builds an UNKNOWN_SEVERITY error for token.
func UnknownSeverity(tool, operation, token string) *Error {
	return New(tool, operation, ErrCodeUnknownSeverity, fmt.Sprintf("unknown severity %q", token)).
		WithDetails(map[string]any{"severity": token}).
		WithClass(ErrorClassSemantic)
}

// CoverageParse builds a COVERAGE_PARSE error.
func CoverageParse(tool, operation, message string, cause error) *Error {
	return New(tool, operation, ErrCodeCoverageParse, message).
		WithCause(cause).
		WithClass(ErrorClassSemantic)
}
