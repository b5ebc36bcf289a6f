// Package config loads .reviewkit.yaml project configuration files.
// A configuration declares the external linters to run and how the project's
// tests and coverage report are produced.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/reviewkit/lint"
	"github.com/zero-day-ai/reviewkit/toolerr"
	"github.com/zero-day-ai/reviewkit/unit"
)

// File names searched for, in order.
const (
	FileName    = ".reviewkit.yaml"
	AltFileName = ".reviewkit.yml"
)

// Default timeouts applied when none is configured.
const (
	DefaultLintTimeout = 5 * time.Minute
	DefaultUnitTimeout = 30 * time.Minute
)

// Config represents a .reviewkit.yaml file.
type Config struct {
	Lint *LintConfig `yaml:"lint,omitempty"`
	Unit *UnitConfig `yaml:"unit,omitempty"`

	// path is the file the configuration was loaded from, if any.
	path string
}

// LintConfig lists the linters run by "reviewkit lint".
type LintConfig struct {
	Linters []LinterConfig `yaml:"linters"`
}

// LinterConfig declares one external linter.
type LinterConfig struct {
	// Name identifies the linter and is the default message code.
	Name string `yaml:"name,omitempty"`

	// Type selects the adapter. Only "external-json" is supported, and it is
	// the default.
	Type string `yaml:"type,omitempty"`

	// Script is run with the paths to lint appended (e.g. "./bin/lint --json")
	Script string `yaml:"script"`

	Shell string `yaml:"shell,omitempty"`

	// Timeout bounds the script run.
	// Format: Go duration string (e.g., "30s", "2m")
	// Default: 5m
	Timeout string `yaml:"timeout,omitempty"`

	// Severity maps message codes to severity tokens (e.g. SC001: advice)
	Severity map[string]string `yaml:"severity,omitempty"`

	// Filter is a CEL expression; messages it rejects are dropped
	Filter string `yaml:"filter,omitempty"`
}

// GetTimeout parses the timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (l *LinterConfig) GetTimeout() time.Duration {
	return durationOr(l.Timeout, DefaultLintTimeout)
}

// Linter converts the entry to a lint.Config running in root.
func (l *LinterConfig) Linter(root string) lint.Config {
	return lint.Config{
		Name:              l.Name,
		Script:            l.Script,
		Shell:             l.Shell,
		WorkDir:           root,
		Timeout:           l.GetTimeout(),
		SeverityOverrides: l.Severity,
		Filter:            l.Filter,
	}
}

// UnitConfig configures "reviewkit unit". Empty fields take the unit
// package defaults.
type UnitConfig struct {
	Command       string `yaml:"command,omitempty"`
	Shell         string `yaml:"shell,omitempty"`
	ReportsDir    string `yaml:"reports_dir,omitempty"`
	ReportPattern string `yaml:"report_pattern,omitempty"`
	CoverageFile  string `yaml:"coverage_file,omitempty"`
	SourceRoot    string `yaml:"source_root,omitempty"`

	// Timeout bounds the test command.
	// Format: Go duration string (e.g., "10m")
	// Default: 30m
	Timeout string `yaml:"timeout,omitempty"`
}

// GetTimeout parses the timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (u *UnitConfig) GetTimeout() time.Duration {
	if u == nil {
		return DefaultUnitTimeout
	}
	return durationOr(u.Timeout, DefaultUnitTimeout)
}

// Engine converts the section to a unit.EngineConfig for root. A nil
// section yields the defaults.
func (u *UnitConfig) Engine(root string) unit.EngineConfig {
	cfg := unit.EngineConfig{ProjectRoot: root, Timeout: u.GetTimeout()}
	if u == nil {
		return cfg
	}
	cfg.Command = u.Command
	cfg.Shell = u.Shell
	cfg.ReportsDir = u.ReportsDir
	cfg.ReportPattern = u.ReportPattern
	cfg.CoverageFile = u.CoverageFile
	cfg.SourceRoot = u.SourceRoot
	return cfg
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding the configuration file, which is taken
// as the project root. It is "" for a configuration not loaded from disk.
func (c *Config) Dir() string {
	if c.path == "" {
		return ""
	}
	return filepath.Dir(c.path)
}

// Linters returns the configured linters, or none.
func (c *Config) Linters() []LinterConfig {
	if c.Lint == nil {
		return nil
	}
	return c.Lint.Linters
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]bool)

	for i, l := range c.Linters() {
		where := fmt.Sprintf("lint.linters[%d]", i)
		name := l.Name
		if name == "" {
			name = lint.DefaultLinterName
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("%s: duplicate linter name %q", where, name))
		}
		seen[name] = true

		if l.Type != "" && l.Type != lint.ConfigurationName {
			errs = append(errs, fmt.Errorf("%s: unsupported type %q", where, l.Type))
		}
		if strings.TrimSpace(l.Script) == "" {
			errs = append(errs, fmt.Errorf("%s: script is required", where))
		}
		if err := checkDuration(l.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("%s: timeout: %w", where, err))
		}
		for code, token := range l.Severity {
			if _, err := lint.ResolveSeverity(token); err != nil {
				errs = append(errs, fmt.Errorf("%s: severity for %q: %w", where, code, err))
			}
		}
		if _, err := lint.NewFilter(l.Filter); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}

	if c.Unit != nil {
		if err := checkDuration(c.Unit.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("unit: timeout: %w", err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return toolerr.New("config", "validate", toolerr.ErrCodeInvalidInput, "invalid configuration").
		WithCause(errors.Join(errs...)).
		WithDetails(map[string]any{"path": c.path})
}

// Parse parses configuration YAML.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

// Load reads and parses a configuration file from the given path.
// If the path is a directory, it looks for .reviewkit.yaml or .reviewkit.yml
// in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range []string{FileName, AltFileName} {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("no %s or %s found in %s: %w", FileName, AltFileName, path, os.ErrNotExist)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}
	config.path = configPath
	return config, nil
}

// LoadFromDir searches for a configuration file starting from the given
// directory and walking up to parent directories until found or root is
// reached. Files that exist but fail to parse stop the search.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		// Move to parent directory
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no %s found in %s or parent directories: %w", FileName, dir, os.ErrNotExist)
		}
		absDir = parent
	}
}

// LoadFromCurrentDir loads the configuration from the current working
// directory or its parents.
func LoadFromCurrentDir() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromDir(cwd)
}

func durationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func checkDuration(s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("must be positive, got %s", s)
	}
	return nil
}
