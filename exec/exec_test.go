package exec

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/zero-day-ai/reviewkit/toolerr"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun_Success(t *testing.T) {
	tests := []struct {
		name           string
		cfg            Config
		expectedStdout string
	}{
		{
			name:           "simple echo",
			cfg:            Config{Command: "echo", Args: []string{"hello", "world"}},
			expectedStdout: "hello world\n",
		},
		{
			name:           "echo without args",
			cfg:            Config{Command: "echo"},
			expectedStdout: "\n",
		},
		{
			name:           "stdin is forwarded",
			cfg:            Config{Command: "cat", StdinData: []byte("hello from stdin")},
			expectedStdout: "hello from stdin",
		},
		{
			name:           "env is applied",
			cfg:            Config{Command: "sh", Args: []string{"-c", "printf %s \"$TEST_VAR\""}, Env: []string{"TEST_VAR=test_value"}},
			expectedStdout: "test_value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ExitCode != 0 {
				t.Errorf("expected exit code 0, got %d", result.ExitCode)
			}
			if got := string(result.Stdout); got != tt.expectedStdout {
				t.Errorf("expected stdout %q, got %q", tt.expectedStdout, got)
			}
			if result.Duration <= 0 {
				t.Error("expected positive duration")
			}
		})
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	cfg := Config{
		Command: "sh",
		Args:    []string{"-c", "echo error message >&2; exit 42"},
	}

	result, err := Run(context.Background(), cfg)

	// Non-zero exit is reported through the result, not as an error
	if err != nil {
		t.Fatalf("unexpected error for non-zero exit: %v", err)
	}
	if result.ExitCode != 42 {
		t.Errorf("expected exit code 42, got %d", result.ExitCode)
	}
	if !strings.Contains(string(result.Stderr), "error message") {
		t.Errorf("expected stderr to contain 'error message', got %q", result.Stderr)
	}

	checkErr := result.Check("ExtJson", "lint")
	if !errors.Is(checkErr, toolerr.ErrProcessFailed) {
		t.Fatalf("Check() = %v, want PROCESS_FAILED", checkErr)
	}
	if !strings.Contains(checkErr.Error(), "error message") {
		t.Errorf("expected stderr in error, got %q", checkErr.Error())
	}
}

func TestResult_CheckSuccess(t *testing.T) {
	r := &Result{ExitCode: 0, Stderr: []byte("warnings are fine")}
	if err := r.Check("ExtJson", "lint"); err != nil {
		t.Errorf("Check() = %v, want nil", err)
	}
}

func TestRun_Timeout(t *testing.T) {
	cfg := Config{
		Command: "sleep",
		Args:    []string{"10"},
		Timeout: 100 * time.Millisecond,
	}

	start := time.Now()
	result, err := Run(context.Background(), cfg)
	duration := time.Since(start)

	if !errors.Is(err, toolerr.ErrTimeout) {
		t.Fatalf("expected TIMEOUT error, got %v", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error message, got: %v", err)
	}
	if duration > 2*time.Second {
		t.Errorf("timeout took too long: %v", duration)
	}
	if result == nil {
		t.Error("expected result even on timeout")
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	result, err := Run(ctx, Config{Command: "sleep", Args: []string{"10"}})
	<-done

	if err == nil {
		t.Fatal("expected cancellation error, got nil")
	}
	if !strings.Contains(err.Error(), "cancelled") {
		t.Errorf("expected cancelled error message, got: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected error to wrap context.Canceled, got %v", err)
	}
	if result == nil {
		t.Error("expected result even on cancellation")
	}
}

func TestRun_WithWorkDir(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := Run(context.Background(), Config{Command: "pwd", WorkDir: tmpDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("command failed with exit code %d: %s", result.ExitCode, result.Stderr)
	}

	stdout := strings.TrimSpace(string(result.Stdout))
	if !strings.Contains(stdout, tmpDir) {
		t.Errorf("expected working dir %q in output, got %q", tmpDir, stdout)
	}
}

func TestRun_BinaryNotFound(t *testing.T) {
	result, err := Run(context.Background(), Config{Command: "this-binary-does-not-exist-12345"})

	if !errors.Is(err, toolerr.ErrBinaryNotFound) {
		t.Fatalf("expected BINARY_NOT_FOUND, got %v", err)
	}
	if !strings.Contains(err.Error(), "execution failed") {
		t.Errorf("expected 'execution failed' in error, got: %v", err)
	}
	if result == nil {
		t.Error("expected result even on error")
	}
}

func TestRun_EmptyCommand(t *testing.T) {
	result, err := Run(context.Background(), Config{})

	if !errors.Is(err, toolerr.ErrInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "command is required") {
		t.Errorf("expected 'command is required' in error, got: %v", err)
	}
	if result != nil {
		t.Error("expected nil result for empty command")
	}
}

func TestShell(t *testing.T) {
	cfg := Shell("", "printf '%s|'", []string{"-n", "a b.go", "deleted/file.txt"})

	if cfg.Command != "sh" {
		t.Errorf("Command = %q, want sh", cfg.Command)
	}

	result, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// paths reach the script as separate, uninterpreted arguments
	want := "-n|a b.go|deleted/file.txt|"
	if got := string(result.Stdout); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestShell_ScriptWithFlags(t *testing.T) {
	cfg := Shell("sh", "echo --", []string{"x"})
	result, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(string(result.Stdout)); got != "-- x" {
		t.Errorf("stdout = %q, want %q", got, "-- x")
	}
}

func TestRunnerFunc(t *testing.T) {
	var seen Config
	r := RunnerFunc(func(_ context.Context, cfg Config) (*Result, error) {
		seen = cfg
		return &Result{Stdout: []byte("[]")}, nil
	})

	res, err := r.Run(context.Background(), Config{Command: "lint.sh"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.Command != "lint.sh" || string(res.Stdout) != "[]" {
		t.Errorf("RunnerFunc did not forward call: %+v %q", seen, res.Stdout)
	}
}

func TestBinaryExists(t *testing.T) {
	if !BinaryExists("sh") {
		t.Error("BinaryExists(sh) = false, want true")
	}
	if BinaryExists("this-binary-does-not-exist-12345") {
		t.Error("BinaryExists(nonexistent) = true, want false")
	}
}

func TestBinaryPath(t *testing.T) {
	path, err := BinaryPath("sh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("path %q does not exist: %v", path, err)
	}

	_, err = BinaryPath("this-binary-does-not-exist-12345")
	if !errors.Is(err, toolerr.ErrBinaryNotFound) {
		t.Errorf("expected BINARY_NOT_FOUND, got %v", err)
	}
}
