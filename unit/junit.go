package unit

import (
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/zero-day-ai/reviewkit/coverage"
	"github.com/zero-day-ai/reviewkit/parser"
	"github.com/zero-day-ai/reviewkit/toolerr"
)

// ResultParser turns one test report file into results.
type ResultParser interface {
	Parse(data []byte) ([]*Result, error)
}

// testClassSuffixes are stripped from a test class name to find the class
// under test.
var testClassSuffixes = []string{"Spec", "Test", "Suite"}

// JUnitParser reads JUnit XML reports, as written by sbt and most JVM test
// runners.
//
// A testcase's file attribute, when present, is its Path. Otherwise the path
// is derived from its classname: com.acme.WidgetSpec becomes
// <SourceRoot>/com/acme/Widget.scala.
type JUnitParser struct {
	// SourceRoot is prefixed to derived paths. Defaults to
	// coverage.DefaultSourceRoot.
	SourceRoot string

	// Extension is the source file extension for derived paths.
	// Defaults to ".scala".
	Extension string
}

// Parse implements ResultParser. Empty input yields no results.
func (p JUnitParser) Parse(data []byte) ([]*Result, error) {
	if parser.IsBlank(data) {
		return nil, nil
	}

	doc, err := parser.ParseXML(data)
	if err != nil {
		return nil, toolerr.MalformedOutput("JUnit", "parse", "invalid test report XML", err)
	}

	cases := doc.FindElements("//testcase")
	results := make([]*Result, 0, len(cases))
	for _, tc := range cases {
		results = append(results, p.parseCase(tc))
	}
	return results, nil
}

func (p JUnitParser) parseCase(tc *etree.Element) *Result {
	classname := tc.SelectAttrValue("classname", "")
	r := &Result{
		Name:      tc.SelectAttrValue("name", ""),
		Namespace: classname,
		Path:      tc.SelectAttrValue("file", ""),
		Status:    StatusPass,
		Duration:  parseSeconds(tc.SelectAttrValue("time", "")),
	}
	if r.Path == "" {
		r.Path = p.pathForClass(classname)
	} else {
		r.Path = coverage.CleanPath(r.Path)
	}

	switch {
	case tc.SelectElement("failure") != nil:
		r.Status = StatusFail
		r.Message = detail(tc.SelectElement("failure"))
	case tc.SelectElement("error") != nil:
		r.Status = StatusBroken
		r.Message = detail(tc.SelectElement("error"))
	case tc.SelectElement("skipped") != nil:
		r.Status = StatusSkip
		r.Message = detail(tc.SelectElement("skipped"))
	}
	return r
}

func (p JUnitParser) pathForClass(classname string) string {
	if classname == "" {
		return ""
	}
	if i := strings.IndexByte(classname, '$'); i >= 0 {
		classname = classname[:i]
	}

	pkg, class := "", classname
	if i := strings.LastIndexByte(classname, '.'); i >= 0 {
		pkg, class = classname[:i], classname[i+1:]
	}
	for _, suffix := range testClassSuffixes {
		if trimmed, ok := strings.CutSuffix(class, suffix); ok && trimmed != "" {
			class = trimmed
			break
		}
	}

	root := p.SourceRoot
	if root == "" {
		root = coverage.DefaultSourceRoot
	}
	ext := p.Extension
	if ext == "" {
		ext = ".scala"
	}
	return path.Join(root, strings.ReplaceAll(pkg, ".", "/"), class+ext)
}

// detail prefers the message attribute and falls back to the element text.
func detail(el *etree.Element) string {
	if msg := el.SelectAttrValue("message", ""); msg != "" {
		return msg
	}
	return strings.TrimSpace(el.Text())
}

func parseSeconds(s string) time.Duration {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
