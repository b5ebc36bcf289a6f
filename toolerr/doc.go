// Package toolerr provides structured error types for reviewkit adapters.
//
// # Overview
//
// Every adapter failure is reported as a *Error carrying the adapter name,
// the operation, a standard code and, where relevant, the text the external
// tool produced. No adapter retries: an error aborts the whole call.
//
// # Error Codes
//
//   - ErrCodeProcessFailed: external tool exited non-zero (stderr in Details)
//   - ErrCodeAbort: tool output requested an abort via its "throw" field
//   - ErrCodeMalformedOutput: output does not match the wire format
//   - ErrCodeUnknownSeverity: a diagnostic used an unrecognized severity
//   - ErrCodeCoverageParse: a coverage report exists but is invalid
//   - ErrCodeBinaryNotFound, ErrCodeExecutionFailed, ErrCodeTimeout,
//     ErrCodeInvalidInput: executor and configuration failures
//
// # Usage
//
//	msgs, err := linter.Lint(ctx, paths)
//	switch {
//	case errors.Is(err, toolerr.ErrAbort):
//	    // err's Message is the tool's own text
//	case errors.Is(err, toolerr.ErrProcessFailed):
//	    var te *toolerr.Error
//	    errors.As(err, &te)
//	    fmt.Fprintln(os.Stderr, te.Details["stderr"])
//	}
package toolerr
