package reviewkit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/zero-day-ai/reviewkit/toolerr"
)

// Sentinel errors for common reviewkit error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoLinters indicates a lint run was requested but no linter is configured.
	ErrNoLinters = errors.New("no linters configured")

	// ErrExecutionFailed indicates that a linter or test run failed.
	// The underlying error is wrapped for additional context.
	ErrExecutionFailed = errors.New("execution failed")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindExecution represents an external tool that could not run or failed.
	KindExecution = "execution"

	// KindOutput represents an external tool whose output broke its format.
	KindOutput = "output"

	// KindAbort represents an external tool that asked to stop the run.
	KindAbort = "abort"

	// KindTimeout represents errors related to operation timeouts.
	KindTimeout = "timeout"

	// KindInternal represents internal errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &Error{
//		Op:   "Runner.Lint",
//		Kind: KindExecution,
//		Err:  ErrExecutionFailed,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Runner.Lint", "Runner.Unit").
	Op string

	// Kind categorizes the error (e.g., KindExecution, KindConfiguration).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("reviewkit: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("reviewkit: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("reviewkit: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
//
// Example:
//
//	err = err.WithContext(map[string]any{
//		"run_id": id,
//		"linter": "Scalastyle",
//	})
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConfigurationError creates a new Error with KindConfiguration.
// The result always matches ErrInvalidConfig.
func NewConfigurationError(op string, err error) *Error {
	if err == nil {
		err = ErrInvalidConfig
	} else if !errors.Is(err, ErrInvalidConfig) {
		err = fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewExecutionError creates a new Error classified from a tool error:
// the kind follows the toolerr code carried by err.
func NewExecutionError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindOf(err),
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// KindOf returns the error kind for a tool error.
func KindOf(err error) string {
	var te *toolerr.Error
	if !errors.As(err, &te) {
		return KindInternal
	}
	switch te.Code {
	case toolerr.ErrCodeAbort:
		return KindAbort
	case toolerr.ErrCodeTimeout:
		return KindTimeout
	case toolerr.ErrCodeMalformedOutput, toolerr.ErrCodeUnknownSeverity, toolerr.ErrCodeCoverageParse:
		return KindOutput
	case toolerr.ErrCodeInvalidInput:
		return KindConfiguration
	case toolerr.ErrCodeProcessFailed, toolerr.ErrCodeExecutionFailed, toolerr.ErrCodeBinaryNotFound:
		return KindExecution
	default:
		return KindInternal
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g., "file",
// "report output"). If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer reviewkit.CloseWithLog(file, logger, "report output")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
