package reviewkit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/reviewkit/config"
	"github.com/zero-day-ai/reviewkit/health"
	"github.com/zero-day-ai/reviewkit/lint"
	"github.com/zero-day-ai/reviewkit/unit"
)

const instrumentationName = "github.com/zero-day-ai/reviewkit"

// Runner runs the linters and the test engine a configuration declares
// against one project.
type Runner struct {
	cfg     *config.Config
	root    string
	linters []*lint.Linter
	engine  *unit.Engine

	logger *slog.Logger
	tracer trace.Tracer
}

// New builds a Runner from cfg. A nil cfg runs the test engine with its
// defaults and no linters.
//
// The project root is WithRoot when given, else the directory of the
// configuration file, else the current directory.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	var rc runnerConfig
	for _, opt := range opts {
		opt(&rc)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewConfigurationError("reviewkit.New", err)
	}

	root := rc.root
	if root == "" {
		root = cfg.Dir()
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, NewConfigurationError("reviewkit.New", fmt.Errorf("project root: %w", err))
	}

	r := &Runner{
		cfg:    cfg,
		root:   abs,
		logger: rc.logger,
		tracer: rc.tracer,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(instrumentationName)
	}

	lintOpts := []lint.Option{lint.WithLogger(r.logger), lint.WithTracer(r.tracer)}
	unitOpts := []unit.EngineOption{unit.WithLogger(r.logger), unit.WithTracer(r.tracer)}
	if rc.meter != nil {
		lintOpts = append(lintOpts, lint.WithMeter(rc.meter))
		unitOpts = append(unitOpts, unit.WithMeter(rc.meter))
	}
	if rc.process != nil {
		lintOpts = append(lintOpts, lint.WithRunner(rc.process))
		unitOpts = append(unitOpts, unit.WithRunner(rc.process))
	}
	if rc.fsys != nil {
		unitOpts = append(unitOpts, unit.WithFileSystem(rc.fsys))
	}

	for _, lc := range cfg.Linters() {
		l, err := lint.NewLinter(lc.Linter(r.root), lintOpts...)
		if err != nil {
			return nil, NewConfigurationError("reviewkit.New", err)
		}
		r.linters = append(r.linters, l)
	}

	r.engine, err = unit.NewEngine(cfg.Unit.Engine(r.root), unitOpts...)
	if err != nil {
		return nil, NewConfigurationError("reviewkit.New", err)
	}

	return r, nil
}

// Root returns the absolute project root.
func (r *Runner) Root() string {
	return r.root
}

// Linters returns the configured linters in run order.
func (r *Runner) Linters() []*lint.Linter {
	return r.linters
}

// Lint runs every configured linter over paths, in configuration order, and
// returns all their messages. The first linter to fail fails the run and no
// messages are returned.
func (r *Runner) Lint(ctx context.Context, paths []string) ([]lint.Message, error) {
	runID := uuid.NewString()
	ctx, span := r.tracer.Start(ctx, "reviewkit.Lint", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("linters", len(r.linters)),
	))
	defer span.End()

	if len(r.linters) == 0 {
		return nil, r.fail(span, &Error{Op: "Runner.Lint", Kind: KindConfiguration, Err: ErrNoLinters})
	}

	logger := r.logger.With("run_id", runID)
	logger.Info("lint run started", "linters", len(r.linters), "paths", len(paths))

	var all []lint.Message
	for _, l := range r.linters {
		msgs, err := l.Lint(ctx, paths)
		if err != nil {
			return nil, r.fail(span, NewExecutionError("Runner.Lint", err).WithContext(map[string]any{
				"run_id": runID,
				"linter": l.Name(),
			}))
		}
		all = append(all, msgs...)
	}

	logger.Info("lint run finished", "messages", len(all))
	return all, nil
}

// Unit runs the project's tests and returns their results, with coverage
// attached for results whose file is in paths.
func (r *Runner) Unit(ctx context.Context, paths []string) ([]*unit.Result, error) {
	runID := uuid.NewString()
	ctx, span := r.tracer.Start(ctx, "reviewkit.Unit", trace.WithAttributes(
		attribute.String("run_id", runID),
	))
	defer span.End()

	logger := r.logger.With("run_id", runID)
	logger.Info("test run started", "paths", len(paths))

	results, err := r.engine.Run(ctx, paths)
	if err != nil {
		return nil, r.fail(span, NewExecutionError("Runner.Unit", err).WithContext(map[string]any{
			"run_id": runID,
		}))
	}

	logger.Info("test run finished", "results", len(results))
	return results, nil
}

// Doctor checks that everything the configured runs depend on is in place.
func (r *Runner) Doctor() []health.Check {
	checks := []health.Check{
		{Name: "project root", Status: health.FileCheck(r.root)},
	}
	if p := r.cfg.Path(); p != "" {
		checks = append(checks, health.Check{Name: "config", Status: health.FileCheck(p)})
	}

	for _, lc := range r.cfg.Linters() {
		cfg := lc.Linter(r.root)
		name := cfg.Name
		if name == "" {
			name = lint.DefaultLinterName
		}
		shell := cfg.Shell
		if shell == "" {
			shell = "sh"
		}
		checks = append(checks,
			health.Check{Name: "lint " + name + " shell", Status: health.BinaryCheck(shell)},
			health.Check{Name: "lint " + name + " script", Status: health.CommandCheck(r.root, cfg.Script)},
		)
	}

	ec := r.engine.Config()
	checks = append(checks,
		health.Check{Name: "unit shell", Status: health.BinaryCheck(ec.Shell)},
		health.Check{Name: "unit command", Status: health.CommandCheck(r.root, ec.Command)},
		health.Check{Name: "unit sources", Status: health.FileCheck(filepath.Join(r.root, filepath.FromSlash(ec.SourceRoot)))},
	)
	return checks
}

func (r *Runner) fail(span trace.Span, err *Error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.logger.Error("run failed", "op", err.Op, "kind", err.Kind, "error", err.Err)
	return err
}
