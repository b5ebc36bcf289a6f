package unit

import (
	"time"

	"github.com/zero-day-ai/reviewkit/coverage"
)

// Status is the outcome of a single test.
type Status string

const (
	StatusPass   Status = "pass"
	StatusFail   Status = "fail"
	StatusSkip   Status = "skip"
	StatusBroken Status = "broken"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPass, StatusFail, StatusSkip, StatusBroken:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Result is one test case outcome.
type Result struct {
	Name      string        `json:"name"`
	Namespace string        `json:"namespace,omitempty"`
	Path      string        `json:"path,omitempty"`
	Status    Status        `json:"status"`
	Duration  time.Duration `json:"duration"`
	Message   string        `json:"message,omitempty"`

	// Coverage maps a source path to its line annotation.
	Coverage map[string]coverage.Annotation `json:"coverage,omitempty"`
}

// CoveragePath returns the source file the result covers.
func (r *Result) CoveragePath() string {
	return r.Path
}

// SetCoverage attaches the annotation for path.
func (r *Result) SetCoverage(path string, a coverage.Annotation) {
	if r.Coverage == nil {
		r.Coverage = make(map[string]coverage.Annotation)
	}
	r.Coverage[path] = a
}

// Failed reports whether the test failed or could not run.
func (r *Result) Failed() bool {
	return r.Status == StatusFail || r.Status == StatusBroken
}
