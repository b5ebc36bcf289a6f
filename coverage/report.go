package coverage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/beevik/etree"

	"github.com/zero-day-ai/reviewkit/parser"
	"github.com/zero-day-ai/reviewkit/toolerr"
)

// ToolName is the tool coverage errors are attributed to.
const ToolName = "Cobertura"

// Line is one instrumented line as reported.
type Line struct {
	Number int `json:"number"`
	Hits   int `json:"hits"`
}

// Covered reports whether the line was executed at least once.
func (l Line) Covered() bool {
	return l.Hits > 0
}

// Class is a report entry for a single source file. Filename is relative to
// the source root the build tool instrumented.
type Class struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Lines    []Line `json:"lines"`
}

// Report is a parsed coverage document.
type Report struct {
	Classes []Class `json:"classes"`
}

// ParseReport parses a Cobertura XML document.
//
// Empty input is an empty report. Each class takes its class-level
// <lines><line/></lines> entries; a class with none falls back to every
// nested <line>, which is where method-level reports put them.
func ParseReport(data []byte) (*Report, error) {
	if parser.IsBlank(data) {
		return &Report{}, nil
	}

	doc, err := parser.ParseXML(data)
	if err != nil {
		return nil, toolerr.CoverageParse(ToolName, "parse", "invalid coverage XML", err)
	}

	report := &Report{}
	for _, el := range doc.FindElements("//class") {
		class, err := parseClass(el)
		if err != nil {
			return nil, err
		}
		report.Classes = append(report.Classes, class)
	}
	return report, nil
}

// ReadReport reads and parses the report at path. A missing file is an empty
// report, since builds that instrument nothing write none.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Report{}, nil
		}
		return nil, toolerr.CoverageParse(ToolName, "read", "failed to read coverage report", err).
			WithDetails(map[string]any{"path": path})
	}
	return ParseReport(data)
}

func parseClass(el *etree.Element) (Class, error) {
	class := Class{
		Name:     el.SelectAttrValue("name", ""),
		Filename: el.SelectAttrValue("filename", ""),
	}
	if class.Filename == "" {
		return Class{}, toolerr.CoverageParse(ToolName, "parse",
			fmt.Sprintf("class %q has no filename", class.Name), nil)
	}

	var lineEls []*etree.Element
	if lines := el.SelectElement("lines"); lines != nil {
		lineEls = lines.SelectElements("line")
	}
	if len(lineEls) == 0 {
		lineEls = el.FindElements(".//line")
	}

	class.Lines = make([]Line, 0, len(lineEls))
	for _, lineEl := range lineEls {
		line, err := parseLine(lineEl)
		if err != nil {
			return Class{}, toolerr.CoverageParse(ToolName, "parse",
				fmt.Sprintf("class %q", class.Filename), err).
				WithDetails(map[string]any{"filename": class.Filename})
		}
		class.Lines = append(class.Lines, line)
	}
	return class, nil
}

func parseLine(el *etree.Element) (Line, error) {
	number, ok, err := parser.IntAttr(el, "number")
	if err != nil {
		return Line{}, err
	}
	if !ok || number < 1 {
		return Line{}, fmt.Errorf("line number must be a positive integer, got %q",
			el.SelectAttrValue("number", ""))
	}

	hits, ok, err := parser.IntAttr(el, "hits")
	if err != nil {
		return Line{}, err
	}
	if !ok || hits < 0 {
		return Line{}, fmt.Errorf("line %d: hits must be a non-negative integer, got %q",
			number, el.SelectAttrValue("hits", ""))
	}

	return Line{Number: number, Hits: hits}, nil
}
