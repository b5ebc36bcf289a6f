package reviewkit

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/reviewkit/coverage"
	"github.com/zero-day-ai/reviewkit/exec"
)

// Option configures a Runner.
type Option func(*runnerConfig)

// runnerConfig holds configuration for the Runner instance.
type runnerConfig struct {
	root    string
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	process exec.Runner
	fsys    coverage.FileSystem
}

// WithRoot sets the project root. Defaults to the directory holding the
// configuration file.
func WithRoot(root string) Option {
	return func(c *runnerConfig) {
		c.root = root
	}
}

// WithLogger sets a custom logger for the runner.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runnerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the runner and everything it
// drives.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *runnerConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for the runner and everything it
// drives.
func WithMeter(meter metric.Meter) Option {
	return func(c *runnerConfig) {
		c.meter = meter
	}
}

// WithProcessRunner replaces how external commands are run. Tests use it to
// fake linters and builds.
func WithProcessRunner(r exec.Runner) Option {
	return func(c *runnerConfig) {
		c.process = r
	}
}

// WithFileSystem sets the filesystem coverage is reconciled against.
func WithFileSystem(fsys coverage.FileSystem) Option {
	return func(c *runnerConfig) {
		c.fsys = fsys
	}
}
