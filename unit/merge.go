package unit

import "github.com/zero-day-ai/reviewkit/coverage"

// Annotatable is a test result that can carry coverage for the file it
// exercises.
type Annotatable interface {
	// CoveragePath returns the project-relative path of the file, or "".
	CoveragePath() string
	SetCoverage(path string, a coverage.Annotation)
}

// Merge attaches each result's file annotation from cov, in place, and
// returns results. Results with no matching entry are left untouched; none
// are dropped, added or reordered.
func Merge[T Annotatable](results []T, cov coverage.FileMap) []T {
	if len(cov) == 0 {
		return results
	}
	for _, r := range results {
		p := r.CoveragePath()
		if p == "" {
			continue
		}
		p = coverage.CleanPath(p)
		if a, ok := cov[p]; ok {
			r.SetCoverage(p, a)
		}
	}
	return results
}
