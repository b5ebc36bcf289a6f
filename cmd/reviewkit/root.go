package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zero-day-ai/reviewkit"
	"github.com/zero-day-ai/reviewkit/config"
	"github.com/zero-day-ai/reviewkit/report"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// errFindings is returned when a command ran but its results fail the
// build. main exits non-zero without printing it.
var errFindings = errors.New("findings reported")

type rootOptions struct {
	configPath string
	root       string
	format     string
	output     string
	verbose    bool
	noColor    bool
}

// newRootCmd builds a fresh command tree, so tests never share flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "reviewkit",
		Short:         "Run a project's linters and tests for code review",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: search .reviewkit.yaml upwards from --root)")
	flags.StringVar(&opts.root, "root", "", "project root (default: the config file's directory)")
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatText), "output format (text|json|sarif)")
	flags.StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(newLintCmd(opts), newUnitCmd(opts), newDoctorCmd(opts))
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loadConfig reads --config, or searches upwards from --root. Finding no
// file is not an error when none was named: the defaults apply.
func (o *rootOptions) loadConfig(logger *slog.Logger) (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}

	dir := o.root
	if dir == "" {
		dir = "."
	}
	cfg, err := config.LoadFromDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no configuration file found, using defaults", "dir", dir)
		return nil, nil
	}
	return cfg, err
}

func (o *rootOptions) newRunner(cmd *cobra.Command) (*reviewkit.Runner, *slog.Logger, error) {
	logger := o.logger(cmd)
	cfg, err := o.loadConfig(logger)
	if err != nil {
		return nil, nil, err
	}

	runnerOpts := []reviewkit.Option{reviewkit.WithLogger(logger)}
	if o.root != "" {
		runnerOpts = append(runnerOpts, reviewkit.WithRoot(o.root))
	}
	r, err := reviewkit.New(cfg, runnerOpts...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("runner ready", "root", r.Root(), "linters", len(r.Linters()))
	return r, logger, nil
}

func (o *rootOptions) renderer() (report.Renderer, error) {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return report.Renderer{}, err
	}
	return report.Renderer{
		Format: format,
		Color:  format == report.FormatText && o.output == "" && !o.noColor && !color.NoColor,
		Tool:   report.ToolInfo{Name: "reviewkit", Version: Version},
	}, nil
}

// write sends the rendered report to --output or to the command's stdout.
func (o *rootOptions) write(cmd *cobra.Command, logger *slog.Logger, render func(io.Writer) error) error {
	if o.output == "" {
		return render(cmd.OutOrStdout())
	}

	f, err := os.Create(o.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer reviewkit.CloseWithLog(f, logger, "report output")

	if err := render(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.output, err)
	}
	return nil
}
