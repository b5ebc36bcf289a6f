package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		count int
		want  Annotation
	}{
		{
			name:  "gaps filled",
			lines: []Line{{3, 0}, {7, 2}},
			count: 10,
			want:  "NNUNNNCNNN",
		},
		{
			name:  "unsorted input",
			lines: []Line{{7, 2}, {3, 0}},
			count: 10,
			want:  "NNUNNNCNNN",
		},
		{
			name:  "no report lines",
			count: 4,
			want:  "NNNN",
		},
		{
			name:  "first and last line",
			lines: []Line{{5, 1}, {1, 1}},
			count: 5,
			want:  "CNNNC",
		},
		{
			name:  "duplicates keep max hits",
			lines: []Line{{2, 0}, {2, 3}, {2, 0}},
			count: 3,
			want:  "NCN",
		},
		{
			name:  "stale lines ignored",
			lines: []Line{{1, 0}, {9, 4}},
			count: 3,
			want:  "UNN",
		},
		{
			name:  "empty file",
			lines: []Line{{1, 1}},
			count: 0,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Annotate(tt.lines, tt.count)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, got.Len())
		})
	}
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	lines := []Line{{7, 2}, {3, 0}, {3, 5}}
	Annotate(lines, 10)
	assert.Equal(t, []Line{{7, 2}, {3, 0}, {3, 5}}, lines)
}

func TestAnnotate_LengthInvariant(t *testing.T) {
	lines := []Line{{1, 0}, {4, 1}, {4, 0}, {12, 3}, {30, 0}, {2, 9}}
	for n := 0; n <= 40; n++ {
		a := Annotate(lines, n)
		assert.Equal(t, n, a.Len(), "line count %d", n)
		for i := 1; i <= n; i++ {
			assert.Contains(t, []Mark{NotInstrumented, Uncovered, Covered}, a.At(i))
		}
	}
}

func TestAnnotation_Helpers(t *testing.T) {
	a := Annotation("NNUNNNCNNN")

	assert.Equal(t, NotInstrumented, a.At(1))
	assert.Equal(t, Uncovered, a.At(3))
	assert.Equal(t, Covered, a.At(7))
	assert.Equal(t, Mark(0), a.At(0))
	assert.Equal(t, Mark(0), a.At(11))
	assert.Equal(t, "C", Covered.String())

	instrumented, covered := a.Counts()
	assert.Equal(t, 2, instrumented)
	assert.Equal(t, 1, covered)
	assert.InDelta(t, 50.0, a.Percent(), 0.001)

	assert.Zero(t, Annotation("NNN").Percent())
}
