package lint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/reviewkit/exec"
	"github.com/zero-day-ai/reviewkit/toolerr"
)

const instrumentationName = "github.com/zero-day-ai/reviewkit/lint"

// Config configures an external JSON linter.
type Config struct {
	// Name identifies the linter and is the default message code.
	// Defaults to DefaultLinterName.
	Name string

	// Script is the command to run. It may include flags or shell syntax;
	// the paths to lint are appended as positional arguments.
	Script string

	// Shell runs Script. Defaults to "sh".
	Shell string

	// WorkDir is where Script runs, normally the project root.
	WorkDir string

	// Env overrides the script environment when non-nil.
	Env []string

	// Timeout bounds the script run. Zero means no limit.
	Timeout time.Duration

	// SeverityOverrides maps message codes to severity tokens, replacing
	// whatever severity the script reported for that code.
	SeverityOverrides map[string]string

	// Filter is an optional CEL expression; see Filter.
	Filter string
}

// Option configures a Linter.
type Option func(*Linter)

// WithRunner sets the process runner. Defaults to exec.DefaultRunner.
func WithRunner(r exec.Runner) Option {
	return func(l *Linter) {
		l.runner = r
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		l.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(l *Linter) {
		l.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter.
func WithMeter(meter metric.Meter) Option {
	return func(l *Linter) {
		l.meter = meter
	}
}

// Linter passes a list of paths to an external script and turns the JSON it
// prints into messages.
//
// The script is invoked once per Lint call with every path as an argument.
// Paths may name deleted or moved files; the linter never checks that they
// exist.
type Linter struct {
	cfg       Config
	overrides map[string]Severity
	filter    *Filter

	runner  exec.Runner
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	counter metric.Int64Counter
}

// NewLinter validates cfg and builds a Linter.
func NewLinter(cfg Config, opts ...Option) (*Linter, error) {
	if cfg.Name == "" {
		cfg.Name = DefaultLinterName
	}
	if cfg.Shell == "" {
		cfg.Shell = "sh"
	}
	if cfg.Script == "" {
		return nil, toolerr.New(cfg.Name, "configure", toolerr.ErrCodeInvalidInput, "script is required")
	}

	overrides := make(map[string]Severity, len(cfg.SeverityOverrides))
	for code, token := range cfg.SeverityOverrides {
		sev, err := ResolveSeverity(token)
		if err != nil {
			return nil, toolerr.New(cfg.Name, "configure", toolerr.ErrCodeInvalidInput,
				fmt.Sprintf("severity override for code %q", code)).WithCause(err)
		}
		overrides[code] = sev
	}

	filter, err := NewFilter(cfg.Filter)
	if err != nil {
		return nil, toolerr.New(cfg.Name, "configure", toolerr.ErrCodeInvalidInput, "filter").WithCause(err)
	}

	l := &Linter{
		cfg:       cfg,
		overrides: overrides,
		filter:    filter,
		runner:    exec.DefaultRunner,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.tracer == nil {
		l.tracer = otel.Tracer(instrumentationName)
	}
	if l.meter == nil {
		l.meter = otel.Meter(instrumentationName)
	}

	l.counter, err = l.meter.Int64Counter("reviewkit.lint.messages",
		metric.WithDescription("Lint messages reported, by severity"))
	if err != nil {
		return nil, fmt.Errorf("failed to create message counter: %w", err)
	}

	return l, nil
}

// Name returns the short linter identifier.
func (l *Linter) Name() string {
	return l.cfg.Name
}

// ConfigurationName returns the linter type used in configuration files.
func (l *Linter) ConfigurationName() string {
	return ConfigurationName
}

// Description returns a human-readable description of the linter.
func (l *Linter) Description() string {
	return "Run an external script, then parse its output as a JSON document " +
		"describing the lint violations."
}

// Lint runs the script over paths and returns its messages.
//
// Nothing is reported from a failed run: a non-zero exit fails with
// PROCESS_FAILED carrying stderr, and any Parse failure is returned as is.
// Severity overrides are applied before the filter.
func (l *Linter) Lint(ctx context.Context, paths []string) ([]Message, error) {
	ctx, span := l.tracer.Start(ctx, "lint.Lint", trace.WithAttributes(
		attribute.String("linter", l.cfg.Name),
		attribute.Int("paths", len(paths)),
	))
	defer span.End()

	if len(paths) == 0 {
		return nil, nil
	}

	cmd := exec.Shell(l.cfg.Shell, l.cfg.Script, paths)
	cmd.WorkDir = l.cfg.WorkDir
	cmd.Env = l.cfg.Env
	cmd.Timeout = l.cfg.Timeout

	l.logger.Debug("running linter script",
		"linter", l.cfg.Name,
		"script", l.cfg.Script,
		"paths", len(paths))

	res, err := l.runner.Run(ctx, cmd)
	if err != nil {
		return nil, l.fail(span, fmt.Errorf("%s: %w", l.cfg.Name, err))
	}
	if err := res.Check(l.cfg.Name, "lint"); err != nil {
		return nil, l.fail(span, err)
	}

	msgs, err := Parse(res.Stdout, WithDefaultCode(l.cfg.Name))
	if err != nil {
		return nil, l.fail(span, err)
	}

	msgs = l.applyOverrides(msgs)

	msgs, err = l.filter.Apply(msgs)
	if err != nil {
		return nil, l.fail(span, err)
	}

	for _, m := range msgs {
		l.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("severity", m.Severity.String())))
	}
	span.SetAttributes(attribute.Int("messages", len(msgs)))

	l.logger.Debug("linter finished",
		"linter", l.cfg.Name,
		"messages", len(msgs),
		"duration", res.Duration)

	return msgs, nil
}

func (l *Linter) applyOverrides(msgs []Message) []Message {
	if len(l.overrides) == 0 {
		return msgs
	}
	for i := range msgs {
		if sev, ok := l.overrides[msgs[i].Code]; ok {
			msgs[i].Severity = sev
		}
	}
	return msgs
}

func (l *Linter) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	l.logger.Warn("linter failed", "linter", l.cfg.Name, "error", err)
	return err
}
