// Package report renders lint messages and test results for people and for
// other tools: coloured text, JSON, or SARIF 2.1.0.
package report

import (
	"fmt"
	"io"

	"github.com/zero-day-ai/reviewkit/lint"
	"github.com/zero-day-ai/reviewkit/unit"
)

// Format is an output format.
type Format string

const (
	// FormatText renders a human-readable listing.
	FormatText Format = "text"

	// FormatJSON renders the messages or results as JSON.
	FormatJSON Format = "json"

	// FormatSARIF renders lint messages in SARIF (Static Analysis Results
	// Interchange Format) 2.1.0.
	FormatSARIF Format = "sarif"
)

// IsValid returns true if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// FileExtension returns the file extension for the format.
func (f Format) FileExtension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatJSON:
		return ".json"
	case FormatSARIF:
		return ".sarif"
	default:
		return ""
	}
}

// MimeType returns the MIME type for the format.
func (f Format) MimeType() string {
	switch f {
	case FormatText:
		return "text/plain"
	case FormatJSON:
		return "application/json"
	case FormatSARIF:
		return "application/sarif+json"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat parses a string into a Format value.
// Returns an error if the string is not a valid format.
func ParseFormat(s string) (Format, error) {
	format := Format(s)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %s", s)
	}
	return format, nil
}

// AllFormats returns all valid formats.
func AllFormats() []Format {
	return []Format{
		FormatText,
		FormatJSON,
		FormatSARIF,
	}
}

// Renderer writes reports in one format.
type Renderer struct {
	Format Format

	// Color enables ANSI colours in text output.
	Color bool

	// Tool describes the producer in SARIF output.
	Tool ToolInfo
}

// Lint writes msgs.
func (r Renderer) Lint(w io.Writer, msgs []lint.Message) error {
	switch r.Format {
	case FormatText, "":
		return WriteLintText(w, msgs, r.Color)
	case FormatJSON:
		return WriteLintJSON(w, msgs)
	case FormatSARIF:
		return WriteSARIF(w, msgs, r.Tool)
	default:
		return fmt.Errorf("invalid output format: %s", r.Format)
	}
}

// Unit writes results. SARIF has no representation for test outcomes and is
// rejected.
func (r Renderer) Unit(w io.Writer, results []*unit.Result) error {
	switch r.Format {
	case FormatText, "":
		return WriteUnitText(w, results, r.Color)
	case FormatJSON:
		return WriteUnitJSON(w, results)
	default:
		return fmt.Errorf("output format %s is not supported for test results", r.Format)
	}
}
