package lint

import (
	"strings"

	"github.com/zero-day-ai/reviewkit/toolerr"
)

// Severity is the classification of a lint message.
type Severity string

const (
	// SeverityError marks a message that must be fixed.
	SeverityError Severity = "error"

	// SeverityWarning marks a message that should be looked at.
	SeverityWarning Severity = "warning"

	// SeverityAutofix marks a message that carries a mechanical fix.
	SeverityAutofix Severity = "autofix"

	// SeverityAdvice marks a stylistic suggestion.
	SeverityAdvice Severity = "advice"

	// SeverityDisabled marks a message that is reported but suppressed.
	SeverityDisabled Severity = "disabled"
)

var severityWeights = map[Severity]int{
	SeverityError:    50,
	SeverityWarning:  40,
	SeverityAutofix:  30,
	SeverityAdvice:   20,
	SeverityDisabled: 10,
}

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	_, ok := severityWeights[s]
	return ok
}

// Weight returns the rank of the severity; higher is more severe.
// Returns 0 for invalid severity levels.
func (s Severity) Weight() int {
	return severityWeights[s]
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// AtLeast reports whether s is at least as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return s.Weight() >= min.Weight()
}

// AllSeverities returns all valid severity levels, most severe first.
func AllSeverities() []Severity {
	return []Severity{
		SeverityError,
		SeverityWarning,
		SeverityAutofix,
		SeverityAdvice,
		SeverityDisabled,
	}
}

// lookupSeverity is the only place severity tokens are compared.
func lookupSeverity(token string) (Severity, bool) {
	if token == "" {
		return SeverityError, true
	}
	s := Severity(strings.ToLower(token))
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

// ResolveSeverity maps a free-form severity token to a Severity.
// An empty token resolves to SeverityError. Matching is case-insensitive;
// any other token fails with an UNKNOWN_SEVERITY error.
func ResolveSeverity(token string) (Severity, error) {
	s, ok := lookupSeverity(token)
	if !ok {
		return "", toolerr.UnknownSeverity("severity", "resolve", token)
	}
	return s, nil
}
