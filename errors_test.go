package reviewkit

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/zero-day-ai/reviewkit/toolerr"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "ErrInvalidConfig", err: ErrInvalidConfig, want: "invalid configuration"},
		{name: "ErrNoLinters", err: ErrNoLinters, want: "no linters configured"},
		{name: "ErrExecutionFailed", err: ErrExecutionFailed, want: "execution failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "basic error",
			err:  &Error{Op: "Runner.Lint", Kind: KindExecution, Err: ErrExecutionFailed},
			want: "reviewkit: Runner.Lint (execution): execution failed",
		},
		{
			name: "error with context",
			err: &Error{
				Op:      "Runner.Lint",
				Kind:    KindAbort,
				Err:     ErrExecutionFailed,
				Context: map[string]any{"linter": "ExtJson"},
			},
			want: "reviewkit: Runner.Lint (abort): execution failed [context:",
		},
		{
			name: "error without underlying error",
			err:  &Error{Op: "reviewkit.New", Kind: KindValidation},
			want: "reviewkit: reviewkit.New: validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	abort := toolerr.Abort("ExtJson", "parse", "database is locked")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "matches underlying sentinel",
			err:    &Error{Op: "Runner.Lint", Kind: KindConfiguration, Err: ErrNoLinters},
			target: ErrNoLinters,
			want:   true,
		},
		{
			name:   "matches tool sentinel through the chain",
			err:    NewExecutionError("Runner.Lint", fmt.Errorf("ExtJson: %w", abort)),
			target: toolerr.ErrAbort,
			want:   true,
		},
		{
			name:   "matches by kind",
			err:    &Error{Op: "Runner.Unit", Kind: KindTimeout},
			target: &Error{Kind: KindTimeout},
			want:   true,
		},
		{
			name:   "matches by kind and op",
			err:    &Error{Op: "Runner.Unit", Kind: KindTimeout},
			target: &Error{Op: "Runner.Unit", Kind: KindTimeout},
			want:   true,
		},
		{
			name:   "op mismatch",
			err:    &Error{Op: "Runner.Unit", Kind: KindTimeout},
			target: &Error{Op: "Runner.Lint", Kind: KindTimeout},
			want:   false,
		},
		{
			name:   "unrelated sentinel",
			err:    &Error{Op: "Runner.Lint", Kind: KindExecution, Err: ErrExecutionFailed},
			target: ErrNoLinters,
			want:   false,
		},
		{
			name:   "nil target",
			err:    &Error{Op: "Runner.Lint", Kind: KindExecution},
			target: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorAs(t *testing.T) {
	cause := toolerr.ProcessFailed("ExtJson", "lint", 2, []byte("boom"))
	var err error = NewExecutionError("Runner.Lint", cause)

	var re *Error
	if !errors.As(err, &re) {
		t.Fatal("errors.As(*Error) failed")
	}
	if re.Kind != KindExecution {
		t.Errorf("Kind = %q, want %q", re.Kind, KindExecution)
	}

	var te *toolerr.Error
	if !errors.As(err, &te) {
		t.Fatal("errors.As(*toolerr.Error) failed")
	}
	if te.Code != toolerr.ErrCodeProcessFailed {
		t.Errorf("Code = %q, want %q", te.Code, toolerr.ErrCodeProcessFailed)
	}
}

func TestWithContext(t *testing.T) {
	base := &Error{Op: "Runner.Lint", Kind: KindExecution, Context: map[string]any{"run_id": "r1"}}
	withCtx := base.WithContext(map[string]any{"linter": "ExtJson"})

	if len(base.Context) != 1 {
		t.Errorf("original context modified: %v", base.Context)
	}
	if withCtx.Context["run_id"] != "r1" || withCtx.Context["linter"] != "ExtJson" {
		t.Errorf("merged context = %v", withCtx.Context)
	}
	if withCtx.Op != base.Op || withCtx.Kind != base.Kind {
		t.Error("WithContext changed Op or Kind")
	}
}

func TestNewConfigurationError(t *testing.T) {
	cause := errors.New("linter 0: script is required")

	tests := []struct {
		name string
		err  error
	}{
		{name: "nil cause", err: nil},
		{name: "plain cause", err: cause},
		{name: "already invalid config", err: fmt.Errorf("load: %w", ErrInvalidConfig)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigurationError("reviewkit.New", tt.err)
			if err.Kind != KindConfiguration {
				t.Errorf("Kind = %q, want %q", err.Kind, KindConfiguration)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("configuration error does not match ErrInvalidConfig")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Error("configuration error lost its cause")
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "abort", err: toolerr.Abort("ExtJson", "parse", "stop"), want: KindAbort},
		{name: "timeout", err: toolerr.New("sh", "run", toolerr.ErrCodeTimeout, "timed out"), want: KindTimeout},
		{name: "malformed", err: toolerr.MalformedOutput("ExtJson", "parse", "bad", nil), want: KindOutput},
		{name: "severity", err: toolerr.UnknownSeverity("ExtJson", "parse", "fatal"), want: KindOutput},
		{name: "coverage", err: toolerr.CoverageParse("Cobertura", "parse", "bad", nil), want: KindOutput},
		{name: "invalid input", err: toolerr.New("unit", "configure", toolerr.ErrCodeInvalidInput, "x"), want: KindConfiguration},
		{name: "process failed", err: toolerr.ProcessFailed("unit", "test", 1, nil), want: KindExecution},
		{name: "binary missing", err: toolerr.New("sbt", "run", toolerr.ErrCodeBinaryNotFound, "x"), want: KindExecution},
		{name: "wrapped", err: fmt.Errorf("ExtJson: %w", toolerr.Abort("ExtJson", "parse", "stop")), want: KindAbort},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "unknown code", err: toolerr.New("x", "y", "WHATEVER", "z"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
