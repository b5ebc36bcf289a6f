package coverage

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/zero-day-ai/reviewkit/toolerr"
)

// DefaultSourceRoot is where report filenames are resolved from.
const DefaultSourceRoot = "src/main/scala"

// FileMap maps a slash-separated, project-relative path to its annotation.
type FileMap map[string]Annotation

// Paths returns the mapped paths in sorted order.
func (m FileMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// ReconcileOption configures Reconcile.
type ReconcileOption func(*reconcileConfig)

type reconcileConfig struct {
	sourceRoot string
}

// WithSourceRoot sets the directory report filenames are relative to.
// Defaults to DefaultSourceRoot. An empty root means the project root.
func WithSourceRoot(root string) ReconcileOption {
	return func(c *reconcileConfig) {
		c.sourceRoot = filepath.ToSlash(root)
	}
}

// Reconcile annotates every report class whose file is in relevant and
// exists in fsys.
//
// Files outside relevant are never read. Classes resolving to the same file,
// as inner classes do, are combined before annotating. A file whose line
// count cannot be read fails the whole call with COVERAGE_PARSE.
func Reconcile(report *Report, fsys FileSystem, relevant []string, opts ...ReconcileOption) (FileMap, error) {
	cfg := reconcileConfig{sourceRoot: DefaultSourceRoot}
	for _, opt := range opts {
		opt(&cfg)
	}

	files := make(FileMap)
	if report == nil || len(relevant) == 0 {
		return files, nil
	}

	wanted := make(map[string]bool, len(relevant))
	for _, p := range relevant {
		wanted[CleanPath(p)] = true
	}

	var order []string
	grouped := make(map[string][]Line)
	for _, class := range report.Classes {
		p := CleanPath(path.Join(cfg.sourceRoot, filepath.ToSlash(class.Filename)))
		if !wanted[p] {
			continue
		}
		if _, seen := grouped[p]; !seen {
			if !fsys.Exists(p) {
				continue
			}
			order = append(order, p)
		}
		grouped[p] = append(grouped[p], class.Lines...)
	}

	for _, p := range order {
		n, err := fsys.LineCount(p)
		if err != nil {
			return nil, toolerr.CoverageParse(ToolName, "reconcile",
				fmt.Sprintf("failed to count lines of %s", p), err).
				WithDetails(map[string]any{"path": p})
		}
		files[p] = Annotate(grouped[p], n)
	}
	return files, nil
}

// CleanPath normalizes p to the slash-separated, cleaned form FileMap keys
// use.
func CleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
