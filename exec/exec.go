// Package exec runs the external tools reviewkit adapters wrap.
// It wraps os/exec with a context-aware API that captures stdout, stderr and
// the exit code, and leaves the decision about what a non-zero exit means to
// the caller.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"

	"github.com/zero-day-ai/reviewkit/toolerr"
)

// Config holds the configuration for command execution.
type Config struct {
	// Command is the name or path of the command to execute (required)
	Command string

	// Args are the command-line arguments (optional)
	Args []string

	// WorkDir is the working directory for the command (optional)
	WorkDir string

	// Env specifies the environment variables in "KEY=value" format (optional)
	// If nil, the command inherits the parent process environment
	Env []string

	// Timeout specifies the maximum execution duration (optional)
	// If zero, no timeout is enforced (uses parent context)
	Timeout time.Duration

	// StdinData is the data to send to the command's stdin (optional)
	StdinData []byte
}

// Result holds the result of command execution.
type Result struct {
	// Stdout contains the captured stdout, fully drained
	Stdout []byte

	// Stderr contains the captured stderr
	Stderr []byte

	// ExitCode is the process exit code
	ExitCode int

	// Duration is the actual execution time
	Duration time.Duration
}

// Runner executes commands. Adapters depend on it so tests can substitute
// a fake process.
type Runner interface {
	Run(ctx context.Context, cfg Config) (*Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cfg Config) (*Result, error)

// Run calls f(ctx, cfg).
func (f RunnerFunc) Run(ctx context.Context, cfg Config) (*Result, error) {
	return f(ctx, cfg)
}

// DefaultRunner runs commands on the host with Run.
var DefaultRunner Runner = RunnerFunc(Run)

// Run executes a command with the given configuration.
//
// A non-zero exit code is not treated as an error: the Result is returned
// with the exit code populated and Check converts it into a PROCESS_FAILED
// error when the caller wants that. Only failures to run the command at all
// return an error, always a *toolerr.Error:
//   - INVALID_INPUT when Command is empty
//   - TIMEOUT when the configured timeout fires
//   - EXECUTION_FAILED when the context is cancelled or the process cannot start
//   - BINARY_NOT_FOUND when the command does not exist
//
// Example:
//
//	res, err := exec.Run(ctx, exec.Config{Command: "sh", Args: []string{"-c", "lint.sh"}})
//	if err != nil {
//		return err
//	}
//	if err := res.Check("ExtJson", "lint"); err != nil {
//		return err // carries stderr
//	}
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Command == "" {
		return nil, toolerr.New("exec", "run", toolerr.ErrCodeInvalidInput, "command is required")
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)
	if cfg.WorkDir != "" {
		cmd.Dir = cfg.WorkDir
	}
	if cfg.Env != nil {
		cmd.Env = cfg.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if len(cfg.StdinData) > 0 {
		cmd.Stdin = bytes.NewReader(cfg.StdinData)
	}

	start := time.Now()
	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return result, toolerr.New(cfg.Command, "run", toolerr.ErrCodeTimeout,
			fmt.Sprintf("command timed out after %v", cfg.Timeout)).
			WithCause(ctx.Err()).
			WithClass(toolerr.ErrorClassTransient)
	case errors.Is(ctx.Err(), context.Canceled):
		return result, toolerr.New(cfg.Command, "run", toolerr.ErrCodeExecutionFailed, "command cancelled").
			WithCause(ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	code := toolerr.ErrCodeExecutionFailed
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		code = toolerr.ErrCodeBinaryNotFound
	}
	return result, toolerr.New(cfg.Command, "run", code, "command execution failed").WithCause(err)
}

// Check returns a PROCESS_FAILED error attributed to tool/operation when the
// process exited non-zero, carrying the captured stderr.
func (r *Result) Check(tool, operation string) error {
	if r.ExitCode == 0 {
		return nil
	}
	return toolerr.ProcessFailed(tool, operation, r.ExitCode, r.Stderr)
}

// Shell builds a Config that runs script through shell with args passed as
// positional parameters, so "$@" inside script expands to args unmodified.
// script may carry its own flags or shell syntax; args are never
// interpreted by the shell, even when they begin with "-".
func Shell(shell, script string, args []string) Config {
	if shell == "" {
		shell = "sh"
	}
	argv := make([]string, 0, len(args)+3)
	argv = append(argv, "-c", script+` "$@"`, shell)
	argv = append(argv, args...)
	return Config{Command: shell, Args: argv}
}

// BinaryExists checks if a binary exists in the system PATH.
func BinaryExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// BinaryPath returns the full path to a binary in the system PATH.
func BinaryPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", toolerr.New(name, "lookup", toolerr.ErrCodeBinaryNotFound,
			fmt.Sprintf("binary %q not found in PATH", name)).WithCause(err)
	}
	return path, nil
}
