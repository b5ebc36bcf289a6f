package unit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/reviewkit/coverage"
	"github.com/zero-day-ai/reviewkit/exec"
	"github.com/zero-day-ai/reviewkit/toolerr"
)

const instrumentationName = "github.com/zero-day-ai/reviewkit/unit"

// EngineName is the tool unit errors are attributed to.
const EngineName = "unit"

// Engine defaults, matching an sbt project with scoverage.
const (
	DefaultCommand       = "sbt coverage test coverageReport"
	DefaultReportsDir    = "target/test-reports"
	DefaultReportPattern = "TEST"
	DefaultCoverageFile  = "target/scala-2.12/coverage-report/cobertura.xml"
)

// EngineConfig configures a test run. Relative paths are resolved against
// ProjectRoot.
type EngineConfig struct {
	// ProjectRoot is the directory the command runs in (required).
	ProjectRoot string

	// Command runs the tests and writes the reports. Defaults to DefaultCommand.
	Command string

	// Shell runs Command. Defaults to "sh".
	Shell string

	// ReportsDir holds the JUnit reports. It is deleted before and after
	// every run.
	ReportsDir string

	// ReportPattern selects report files: every file whose name contains it
	// is parsed.
	ReportPattern string

	// CoverageFile is the Cobertura report the command writes.
	CoverageFile string

	// SourceRoot is where coverage report filenames are resolved from.
	SourceRoot string

	// Timeout bounds the command. Zero means no limit.
	Timeout time.Duration
}

func (c *EngineConfig) applyDefaults() {
	if c.Command == "" {
		c.Command = DefaultCommand
	}
	if c.Shell == "" {
		c.Shell = "sh"
	}
	if c.ReportsDir == "" {
		c.ReportsDir = DefaultReportsDir
	}
	if c.ReportPattern == "" {
		c.ReportPattern = DefaultReportPattern
	}
	if c.CoverageFile == "" {
		c.CoverageFile = DefaultCoverageFile
	}
	if c.SourceRoot == "" {
		c.SourceRoot = coverage.DefaultSourceRoot
	}
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRunner sets the process runner. Defaults to exec.DefaultRunner.
func WithRunner(r exec.Runner) EngineOption {
	return func(e *Engine) {
		e.runner = r
	}
}

// WithParser sets the report parser. Defaults to a JUnitParser using the
// configured SourceRoot.
func WithParser(p ResultParser) EngineOption {
	return func(e *Engine) {
		e.parser = p
	}
}

// WithFileSystem sets the filesystem coverage is reconciled against.
// Defaults to coverage.OSFileSystem rooted at ProjectRoot.
func WithFileSystem(fsys coverage.FileSystem) EngineOption {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter.
func WithMeter(meter metric.Meter) EngineOption {
	return func(e *Engine) {
		e.meter = meter
	}
}

// Engine runs a project's tests and collects annotated results.
type Engine struct {
	cfg EngineConfig

	runner  exec.Runner
	parser  ResultParser
	fsys    coverage.FileSystem
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	counter metric.Int64Counter
}

// NewEngine validates cfg and builds an Engine.
func NewEngine(cfg EngineConfig, opts ...EngineOption) (*Engine, error) {
	if cfg.ProjectRoot == "" {
		return nil, toolerr.New(EngineName, "configure", toolerr.ErrCodeInvalidInput, "project root is required")
	}
	cfg.applyDefaults()

	e := &Engine{
		cfg:    cfg,
		runner: exec.DefaultRunner,
		parser: JUnitParser{SourceRoot: cfg.SourceRoot},
		fsys:   coverage.OSFileSystem{Root: cfg.ProjectRoot},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(instrumentationName)
	}
	if e.meter == nil {
		e.meter = otel.Meter(instrumentationName)
	}

	var err error
	e.counter, err = e.meter.Int64Counter("reviewkit.unit.results",
		metric.WithDescription("Test results reported, by status"))
	if err != nil {
		return nil, fmt.Errorf("failed to create result counter: %w", err)
	}

	return e, nil
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Run executes the test command and returns every parsed result, with
// coverage attached for results whose file is in paths.
//
// The reports directory and the coverage file are removed before the command
// starts and again when Run returns, whether or not it succeeded, so a run
// never reads another run's output. A non-zero exit fails with
// PROCESS_FAILED and no results.
func (e *Engine) Run(ctx context.Context, paths []string) ([]*Result, error) {
	ctx, span := e.tracer.Start(ctx, "unit.Run", trace.WithAttributes(
		attribute.String("command", e.cfg.Command),
		attribute.Int("paths", len(paths)),
	))
	defer span.End()

	reportsDir := e.resolve(e.cfg.ReportsDir)
	coverageFile := e.resolve(e.cfg.CoverageFile)
	for _, p := range []string{reportsDir, coverageFile} {
		if err := os.RemoveAll(p); err != nil {
			return nil, e.fail(span, fmt.Errorf("failed to clear %s: %w", p, err))
		}
	}
	defer e.removeAllWithLog(coverageFile)
	defer e.removeAllWithLog(reportsDir)

	cmd := exec.Shell(e.cfg.Shell, e.cfg.Command, nil)
	cmd.WorkDir = e.cfg.ProjectRoot
	cmd.Timeout = e.cfg.Timeout

	e.logger.Debug("running test command", "command", e.cfg.Command, "root", e.cfg.ProjectRoot)

	res, err := e.runner.Run(ctx, cmd)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("%s: %w", EngineName, err))
	}
	if err := res.Check(EngineName, "test"); err != nil {
		return nil, e.fail(span, err)
	}

	report, err := coverage.ReadReport(coverageFile)
	if err != nil {
		return nil, e.fail(span, err)
	}
	files, err := coverage.Reconcile(report, e.fsys, paths, coverage.WithSourceRoot(e.cfg.SourceRoot))
	if err != nil {
		return nil, e.fail(span, err)
	}

	results, err := e.readResults(reportsDir)
	if err != nil {
		return nil, e.fail(span, err)
	}
	e.relativize(results)
	results = Merge(results, files)

	for _, r := range results {
		e.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", r.Status.String())))
	}
	span.SetAttributes(
		attribute.Int("results", len(results)),
		attribute.Int("covered_files", len(files)),
	)

	e.logger.Debug("test command finished",
		"results", len(results),
		"covered_files", len(files),
		"duration", res.Duration)

	return results, nil
}

// readResults parses every report in dir whose name matches the pattern,
// in name order. A missing directory means no tests ran.
func (e *Engine) readResults(dir string) ([]*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	var results []*Result
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), e.cfg.ReportPattern) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", entry.Name(), err)
		}
		parsed, err := e.parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", entry.Name(), err)
		}
		results = append(results, parsed...)
	}
	return results, nil
}

// relativize rewrites absolute result paths inside the project root to
// project-relative ones, the form coverage is keyed by.
func (e *Engine) relativize(results []*Result) {
	for _, r := range results {
		if !filepath.IsAbs(r.Path) {
			continue
		}
		rel, err := filepath.Rel(e.cfg.ProjectRoot, r.Path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		r.Path = coverage.CleanPath(rel)
	}
}

func (e *Engine) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.cfg.ProjectRoot, filepath.FromSlash(p))
}

func (e *Engine) removeAllWithLog(path string) {
	if err := os.RemoveAll(path); err != nil {
		e.logger.Warn("failed to remove report output",
			"path", path,
			"error", err)
	}
}

func (e *Engine) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	e.logger.Warn("test run failed", "error", err)
	return err
}
