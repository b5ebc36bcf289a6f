package report

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/zero-day-ai/reviewkit/lint"
	"github.com/zero-day-ai/reviewkit/unit"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// LintDocument is the JSON form of a lint run.
type LintDocument struct {
	Messages []lint.Message `json:"messages"`
}

// UnitDocument is the JSON form of a test run.
type UnitDocument struct {
	Results []*unit.Result `json:"results"`
}

// WriteLintJSON writes msgs as an indented LintDocument.
func WriteLintJSON(w io.Writer, msgs []lint.Message) error {
	if msgs == nil {
		msgs = []lint.Message{}
	}
	return writeJSON(w, LintDocument{Messages: msgs})
}

// WriteUnitJSON writes results as an indented UnitDocument.
func WriteUnitJSON(w io.Writer, results []*unit.Result) error {
	if results == nil {
		results = []*unit.Result{}
	}
	return writeJSON(w, UnitDocument{Results: results})
}

func writeJSON(w io.Writer, v any) error {
	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
