package toolerr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestNew verifies that New() creates a correct Error with all fields set.
func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		operation string
		code      string
		message   string
	}{
		{
			name:      "complete error",
			tool:      "ExtJson",
			operation: "lint",
			code:      ErrCodeInvalidInput,
			message:   "script is required",
		},
		{
			name:      "empty message",
			tool:      "coverage",
			operation: "reconcile",
			code:      ErrCodeCoverageParse,
			message:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.tool, tt.operation, tt.code, tt.message)

			if err.Tool != tt.tool {
				t.Errorf("Tool = %q, want %q", err.Tool, tt.tool)
			}
			if err.Operation != tt.operation {
				t.Errorf("Operation = %q, want %q", err.Operation, tt.operation)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Message != tt.message {
				t.Errorf("Message = %q, want %q", err.Message, tt.message)
			}
			if err.Details != nil {
				t.Errorf("Details = %v, want nil", err.Details)
			}
			if err.Cause != nil {
				t.Errorf("Cause = %v, want nil", err.Cause)
			}
		})
	}
}

func TestWithCause(t *testing.T) {
	tests := []struct {
		name  string
		cause error
	}{
		{"standard error", errors.New("underlying error")},
		{"context deadline exceeded", context.DeadlineExceeded},
		{"fmt error", fmt.Errorf("wrapped: %w", errors.New("original"))},
		{"nil cause", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("test", "operation", ErrCodeExecutionFailed, "test message").
				WithCause(tt.cause)

			if err.Cause != tt.cause {
				t.Errorf("Cause = %v, want %v", err.Cause, tt.cause)
			}
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New("ExtJson", "parse", ErrCodeAbort, "database is locked"),
			want: "ExtJson [parse/ABORT]: database is locked",
		},
		{
			name: "message and cause",
			err: New("ExtJson", "lint", ErrCodeExecutionFailed, "command execution failed").
				WithCause(errors.New("exec: \"nope\": executable file not found in $PATH")),
			want: "ExtJson [lint/EXECUTION_FAILED]: command execution failed: exec: \"nope\": executable file not found in $PATH",
		},
		{
			name: "no message",
			err:  New("coverage", "read", ErrCodeCoverageParse, ""),
			want: "coverage [read/COVERAGE_PARSE]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	base := errors.New("root cause")
	err := New("ExtJson", "parse", ErrCodeMalformedOutput, "bad json").WithCause(base)

	if !errors.Is(err, base) {
		t.Error("errors.Is should find the cause")
	}
	if errors.Unwrap(err) != base {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), base)
	}
}

func TestErrorsIs_Sentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"process failed", ProcessFailed("ExtJson", "lint", 2, []byte("boom")), ErrProcessFailed},
		{"abort", Abort("ExtJson", "parse", "stop"), ErrAbort},
		{"malformed", MalformedOutput("ExtJson", "parse", "not an array", nil), ErrMalformedOutput},
		{"unknown severity", UnknownSeverity("ExtJson", "parse", "bogus"), ErrUnknownSeverity},
		{"coverage parse", CoverageParse("coverage", "parse", "bad xml", nil), ErrCoverageParse},
		{"timeout", New("x", "run", ErrCodeTimeout, "slow"), ErrTimeout},
	}

	all := []error{
		ErrProcessFailed, ErrAbort, ErrMalformedOutput, ErrUnknownSeverity,
		ErrCoverageParse, ErrBinaryNotFound, ErrTimeout, ErrInvalidInput,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range all {
				want := s == tt.sentinel
				if got := errors.Is(tt.err, s); got != want {
					t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, s, got, want)
				}
			}

			wrapped := fmt.Errorf("pipeline: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("wrapped error should still match %v", tt.sentinel)
			}
		})
	}
}

func TestErrorsIs_SameIdentity(t *testing.T) {
	a := New("ExtJson", "parse", ErrCodeAbort, "one")
	b := New("ExtJson", "parse", ErrCodeAbort, "two")
	c := New("ExtJson", "lint", ErrCodeAbort, "one")

	if !errors.Is(a, b) {
		t.Error("errors with same tool/operation/code should match")
	}
	if errors.Is(a, c) {
		t.Error("errors with different operation should not match")
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", UnknownSeverity("ExtJson", "parse", "bogus"))

	var te *Error
	if !errors.As(err, &te) {
		t.Fatal("errors.As should extract *Error")
	}
	if te.Code != ErrCodeUnknownSeverity {
		t.Errorf("Code = %q, want %q", te.Code, ErrCodeUnknownSeverity)
	}
	if te.Details["severity"] != "bogus" {
		t.Errorf("Details[severity] = %v, want bogus", te.Details["severity"])
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Abort("ExtJson", "parse", "stop"))
	if !HasCode(err, ErrCodeAbort) {
		t.Error("HasCode should report ABORT")
	}
	if HasCode(err, ErrCodeProcessFailed) {
		t.Error("HasCode should not report PROCESS_FAILED")
	}
	if HasCode(errors.New("plain"), ErrCodeAbort) {
		t.Error("HasCode should be false for plain errors")
	}
}

func TestProcessFailed(t *testing.T) {
	err := ProcessFailed("ExtJson", "lint", 3, []byte("  something broke\n"))

	if err.Code != ErrCodeProcessFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeProcessFailed)
	}
	if !strings.Contains(err.Error(), "status 3") {
		t.Errorf("Error() = %q, want exit status", err.Error())
	}
	if !strings.HasSuffix(err.Message, "something broke") {
		t.Errorf("Message = %q, want trimmed stderr", err.Message)
	}
	if err.Details["exit_code"] != 3 {
		t.Errorf("Details[exit_code] = %v, want 3", err.Details["exit_code"])
	}
	if err.Details["stderr"] != "  something broke\n" {
		t.Errorf("Details[stderr] = %q, want raw stderr", err.Details["stderr"])
	}

	quiet := ProcessFailed("ExtJson", "lint", 1, nil)
	if quiet.Message != "process exited with status 1" {
		t.Errorf("Message = %q, want no stderr suffix", quiet.Message)
	}
}

func TestAbort_MessageVerbatim(t *testing.T) {
	text := "  linter crashed: 'x'  "
	err := Abort("ExtJson", "parse", text)
	if err.Message != text {
		t.Errorf("Message = %q, want %q", err.Message, text)
	}
}
