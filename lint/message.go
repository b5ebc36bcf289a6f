package lint

import "fmt"

const (
	// DefaultName is the title given to messages that do not carry one.
	DefaultName = "Lint"

	// DefaultDescription is the text given to messages that do not carry one.
	DefaultDescription = "Undefined Lint Message"

	// DefaultLinterName identifies the external JSON linter. It is also the
	// default message code.
	DefaultLinterName = "ExtJson"

	// ConfigurationName is the linter type used in configuration files.
	ConfigurationName = "external-json"
)

// Message is one normalized lint finding.
type Message struct {
	// Path is the file the message applies to. It may name a deleted or
	// missing file and is empty when the tool did not report one.
	Path string `json:"path,omitempty"`

	// Line and Char are 1-based; nil when not reported.
	Line *int `json:"line,omitempty"`
	Char *int `json:"char,omitempty"`

	// Offset is the byte offset the tool reported, kept as given.
	Offset *int `json:"offset,omitempty"`

	Code        string   `json:"code"`
	Severity    Severity `json:"severity"`
	Name        string   `json:"name"`
	Description string   `json:"description"`

	// OriginalText and ReplacementText are nil unless the tool supplied them.
	OriginalText    *string `json:"original,omitempty"`
	ReplacementText *string `json:"replacement,omitempty"`
}

// HasPath reports whether the tool attributed the message to a file.
func (m Message) HasPath() bool {
	return m.Path != ""
}

// IsPatchable reports whether the message carries an automatic fix.
func (m Message) IsPatchable() bool {
	return m.ReplacementText != nil
}

// Location renders the message position as "path:line:char", omitting the
// parts that are absent. A reported offset is shown only when no line was
// given.
func (m Message) Location() string {
	loc := m.Path
	if loc == "" {
		loc = "<unknown>"
	}
	switch {
	case m.Line != nil && m.Char != nil:
		return fmt.Sprintf("%s:%d:%d", loc, *m.Line, *m.Char)
	case m.Line != nil:
		return fmt.Sprintf("%s:%d", loc, *m.Line)
	case m.Offset != nil:
		return fmt.Sprintf("%s@%d", loc, *m.Offset)
	default:
		return loc
	}
}

// lineOrZero and charOrZero feed expression filters, which have no notion of
// an absent int.
func (m Message) lineOrZero() int {
	if m.Line == nil {
		return 0
	}
	return *m.Line
}

func (m Message) charOrZero() int {
	if m.Char == nil {
		return 0
	}
	return *m.Char
}
