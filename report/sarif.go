package report

import (
	"io"
	"slices"

	"github.com/zero-day-ai/reviewkit/lint"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

// ToolInfo names the tool in SARIF output.
type ToolInfo struct {
	Name    string
	Version string
}

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Fixes      []sarifFix      `json:"fixes,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	CharOffset  *int `json:"charOffset,omitempty"`
}

type sarifFix struct {
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact     `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion   `json:"deletedRegion"`
	InsertedContent *sarifMessage `json:"insertedContent,omitempty"`
}

// sarifLevel maps a severity to a SARIF result level. Disabled messages are
// not reported.
func sarifLevel(s lint.Severity) (string, bool) {
	switch s {
	case lint.SeverityError:
		return "error", true
	case lint.SeverityWarning, lint.SeverityAutofix:
		return "warning", true
	case lint.SeverityAdvice:
		return "note", true
	default:
		return "", false
	}
}

// WriteSARIF writes msgs as a single-run SARIF 2.1.0 log. Each distinct
// message code becomes a rule.
func WriteSARIF(w io.Writer, msgs []lint.Message, tool ToolInfo) error {
	if tool.Name == "" {
		tool.Name = "reviewkit"
	}

	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: tool.Name, Version: tool.Version}},
		Results: []sarifResult{},
	}
	rules := make(map[string]string)

	for _, m := range msgs {
		level, ok := sarifLevel(m.Severity)
		if !ok {
			continue
		}
		if _, seen := rules[m.Code]; !seen {
			rules[m.Code] = m.Name
		}

		res := sarifResult{
			RuleID:  m.Code,
			Level:   level,
			Message: sarifMessage{Text: m.Description},
			Properties: map[string]any{
				"name":     m.Name,
				"severity": m.Severity.String(),
			},
		}
		if m.HasPath() {
			region := sarifRegionFor(m)
			res.Locations = []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifact{URI: m.Path},
				Region:           region,
			}}}
			if m.IsPatchable() && region != nil {
				res.Fixes = []sarifFix{sarifFixFor(m, *region)}
			}
		}
		run.Results = append(run.Results, res)
	}

	codes := make([]string, 0, len(rules))
	for code := range rules {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               code,
			ShortDescription: sarifMessage{Text: rules[code]},
		})
	}

	return writeJSON(w, sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs:    []sarifRun{run},
	})
}

func sarifRegionFor(m lint.Message) *sarifRegion {
	switch {
	case m.Line != nil:
		r := &sarifRegion{StartLine: *m.Line}
		if m.Char != nil {
			r.StartColumn = *m.Char
		}
		return r
	case m.Offset != nil:
		return &sarifRegion{CharOffset: m.Offset}
	default:
		return nil
	}
}

func sarifFixFor(m lint.Message, region sarifRegion) sarifFix {
	rep := sarifReplacement{
		DeletedRegion:   region,
		InsertedContent: &sarifMessage{Text: *m.ReplacementText},
	}
	return sarifFix{ArtifactChanges: []sarifArtifactChange{{
		ArtifactLocation: sarifArtifact{URI: m.Path},
		Replacements:     []sarifReplacement{rep},
	}}}
}
