package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/zero-day-ai/reviewkit/lint"
	"github.com/zero-day-ai/reviewkit/unit"
)

// palette holds the colours of one text report.
type palette struct {
	path     *color.Color
	severity map[lint.Severity]*color.Color
	status   map[unit.Status]*color.Color
	dim      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path: color.New(color.Bold),
		severity: map[lint.Severity]*color.Color{
			lint.SeverityError:    color.New(color.FgRed, color.Bold),
			lint.SeverityWarning:  color.New(color.FgYellow, color.Bold),
			lint.SeverityAutofix:  color.New(color.FgCyan),
			lint.SeverityAdvice:   color.New(color.FgBlue),
			lint.SeverityDisabled: color.New(color.FgHiBlack),
		},
		status: map[unit.Status]*color.Color{
			unit.StatusPass:   color.New(color.FgGreen, color.Bold),
			unit.StatusFail:   color.New(color.FgRed, color.Bold),
			unit.StatusBroken: color.New(color.FgMagenta, color.Bold),
			unit.StatusSkip:   color.New(color.FgYellow),
		},
		dim: color.New(color.FgHiBlack),
	}

	all := []*color.Color{p.path, p.dim}
	for _, c := range p.severity {
		all = append(all, c)
	}
	for _, c := range p.status {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) forSeverity(s lint.Severity) *color.Color {
	if c, ok := p.severity[s]; ok {
		return c
	}
	return p.dim
}

func (p palette) forStatus(s unit.Status) *color.Color {
	if c, ok := p.status[s]; ok {
		return c
	}
	return p.dim
}

// WriteLintText writes one line per message followed by a summary:
//
//	foo/bar/blah.bleh:13: ERROR [ExtJson] Lint: Too many goats!
func WriteLintText(w io.Writer, msgs []lint.Message, useColor bool) error {
	p := newPalette(useColor)
	counts := make(map[lint.Severity]int)

	for _, m := range msgs {
		counts[m.Severity]++
		_, err := fmt.Fprintf(w, "%s: %s [%s] %s: %s\n",
			p.path.Sprint(m.Location()),
			p.forSeverity(m.Severity).Sprint(strings.ToUpper(m.Severity.String())),
			m.Code,
			m.Name,
			m.Description)
		if err != nil {
			return err
		}
		if m.IsPatchable() {
			original := ""
			if m.OriginalText != nil {
				original = *m.OriginalText
			}
			if _, err := fmt.Fprintf(w, "    %s %q -> %q\n", p.dim.Sprint("fix:"), original, *m.ReplacementText); err != nil {
				return err
			}
		}
	}

	if len(msgs) == 0 {
		_, err := fmt.Fprintln(w, "No lint messages.")
		return err
	}

	var parts []string
	for _, s := range lint.AllSeverities() {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	_, err := fmt.Fprintf(w, "%s (%s)\n", plural(len(msgs), "message"), strings.Join(parts, ", "))
	return err
}

// WriteUnitText writes one line per result, its coverage, and a summary:
//
//	PASS   com.acme.WidgetSpec renders (250ms)
//	       coverage src/main/scala/com/acme/Widget.scala: 50.0% (1/2 lines)
func WriteUnitText(w io.Writer, results []*unit.Result, useColor bool) error {
	p := newPalette(useColor)
	counts := make(map[unit.Status]int)

	for _, r := range results {
		counts[r.Status]++
		name := r.Name
		if r.Namespace != "" {
			name = r.Namespace + " " + r.Name
		}
		label := fmt.Sprintf("%-6s", strings.ToUpper(r.Status.String()))
		if _, err := fmt.Fprintf(w, "%s %s (%s)\n",
			p.forStatus(r.Status).Sprint(label), name, r.Duration.Round(time.Millisecond)); err != nil {
			return err
		}
		if r.Message != "" {
			if _, err := fmt.Fprintf(w, "       %s\n", p.dim.Sprint(r.Message)); err != nil {
				return err
			}
		}
		paths := make([]string, 0, len(r.Coverage))
		for path := range r.Coverage {
			paths = append(paths, path)
		}
		slices.Sort(paths)
		for _, path := range paths {
			a := r.Coverage[path]
			instrumented, covered := a.Counts()
			if _, err := fmt.Fprintf(w, "       coverage %s: %.1f%% (%d/%d lines)\n",
				path, a.Percent(), covered, instrumented); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%s: %d passed, %d failed, %d broken, %d skipped\n",
		plural(len(results), "test"),
		counts[unit.StatusPass], counts[unit.StatusFail], counts[unit.StatusBroken], counts[unit.StatusSkip])
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
