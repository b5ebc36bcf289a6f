package coverage

import (
	"cmp"
	"slices"
	"strings"
)

// Mark classifies a single source line.
type Mark byte

const (
	// NotInstrumented lines carry no executable code the report knows of.
	NotInstrumented Mark = 'N'
	// Uncovered lines are instrumented but never ran.
	Uncovered Mark = 'U'
	// Covered lines ran at least once.
	Covered Mark = 'C'
)

func (m Mark) String() string {
	return string(rune(m))
}

// Annotation holds one Mark per line of a file; line n is at index n-1.
type Annotation string

// Len returns the number of lines annotated.
func (a Annotation) Len() int {
	return len(a)
}

// At returns the mark for a 1-based line, or 0 when line is out of range.
func (a Annotation) At(line int) Mark {
	if line < 1 || line > len(a) {
		return 0
	}
	return Mark(a[line-1])
}

// Counts returns how many lines are instrumented and how many of those are
// covered.
func (a Annotation) Counts() (instrumented, covered int) {
	for i := 0; i < len(a); i++ {
		switch Mark(a[i]) {
		case Covered:
			instrumented++
			covered++
		case Uncovered:
			instrumented++
		}
	}
	return instrumented, covered
}

// Percent returns covered lines as a percentage of instrumented lines, or 0
// when nothing is instrumented.
func (a Annotation) Percent() float64 {
	instrumented, covered := a.Counts()
	if instrumented == 0 {
		return 0
	}
	return float64(covered) * 100 / float64(instrumented)
}

// Annotate builds the annotation of a file with lineCount lines from its
// reported lines, which may be in any order.
//
// Lines the report does not mention are NotInstrumented. A line reported more
// than once keeps its highest hit count. Reported lines past lineCount come
// from a stale report and are ignored, so the result is always exactly
// lineCount long.
func Annotate(lines []Line, lineCount int) Annotation {
	if lineCount <= 0 {
		return ""
	}

	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b Line) int {
		return cmp.Compare(a.Number, b.Number)
	})
	sorted = mergeDuplicates(sorted)

	var b strings.Builder
	b.Grow(lineCount)

	cursor := 1
	for _, l := range sorted {
		if l.Number > lineCount {
			break
		}
		for ; cursor < l.Number; cursor++ {
			b.WriteByte(byte(NotInstrumented))
		}
		if l.Covered() {
			b.WriteByte(byte(Covered))
		} else {
			b.WriteByte(byte(Uncovered))
		}
		cursor++
	}
	for ; cursor <= lineCount; cursor++ {
		b.WriteByte(byte(NotInstrumented))
	}

	return Annotation(b.String())
}

// mergeDuplicates collapses runs of equal line numbers in a sorted slice,
// keeping the largest hit count.
func mergeDuplicates(sorted []Line) []Line {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, l := range sorted[1:] {
		last := &out[len(out)-1]
		if l.Number == last.Number {
			last.Hits = max(last.Hits, l.Hits)
			continue
		}
		out = append(out, l)
	}
	return out
}
