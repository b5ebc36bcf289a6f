package coverage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/reviewkit/toolerr"
)

// memFS is an in-memory FileSystem keyed by path, holding line counts.
type memFS struct {
	counts map[string]int
	errs   map[string]error
	reads  []string
}

func (m *memFS) Exists(p string) bool {
	_, ok := m.counts[p]
	if !ok {
		_, ok = m.errs[p]
	}
	return ok
}

func (m *memFS) LineCount(p string) (int, error) {
	m.reads = append(m.reads, p)
	if err, ok := m.errs[p]; ok {
		return 0, err
	}
	return m.counts[p], nil
}

func TestReconcile(t *testing.T) {
	report := &Report{Classes: []Class{
		{Filename: "foo/Bar.scala", Lines: []Line{{7, 2}, {3, 0}}},
		{Filename: "foo/Baz.scala", Lines: []Line{{1, 1}}},
		{Filename: "foo/Gone.scala", Lines: []Line{{1, 1}}},
	}}
	fsys := &memFS{counts: map[string]int{
		"src/main/scala/foo/Bar.scala": 10,
		"src/main/scala/foo/Baz.scala": 2,
	}}

	files, err := Reconcile(report, fsys, []string{
		"src/main/scala/foo/Bar.scala",
		"src/main/scala/foo/Gone.scala",
	})
	require.NoError(t, err)

	assert.Equal(t, FileMap{"src/main/scala/foo/Bar.scala": "NNUNNNCNNN"}, files)
	assert.Equal(t, []string{"src/main/scala/foo/Bar.scala"}, fsys.reads, "irrelevant files are never read")
}

func TestReconcile_IrrelevantOmitted(t *testing.T) {
	report := &Report{Classes: []Class{{Filename: "a.scala", Lines: []Line{{1, 1}}}}}
	fsys := &memFS{counts: map[string]int{"src/main/scala/a.scala": 1}}

	files, err := Reconcile(report, fsys, []string{"src/main/scala/other.scala"})
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = Reconcile(report, fsys, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReconcile_MergesClassesOfOneFile(t *testing.T) {
	report := &Report{Classes: []Class{
		{Name: "Outer", Filename: "x/Outer.scala", Lines: []Line{{1, 0}, {4, 0}}},
		{Name: "Outer$Inner", Filename: "x/Outer.scala", Lines: []Line{{2, 1}, {4, 3}}},
	}}
	fsys := &memFS{counts: map[string]int{"lib/x/Outer.scala": 5}}

	files, err := Reconcile(report, fsys, []string{"./lib/x/Outer.scala"}, WithSourceRoot("lib"))
	require.NoError(t, err)
	assert.Equal(t, FileMap{"lib/x/Outer.scala": "UCNCN"}, files)
	assert.Equal(t, []string{"lib/x/Outer.scala"}, files.Paths())
}

func TestReconcile_LineCountError(t *testing.T) {
	report := &Report{Classes: []Class{{Filename: "a.scala"}}}
	fsys := &memFS{errs: map[string]error{"a.scala": errors.New("permission denied")}}

	files, err := Reconcile(report, fsys, []string{"a.scala"}, WithSourceRoot(""))
	assert.Nil(t, files)
	assert.True(t, errors.Is(err, toolerr.ErrCoverageParse))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestReconcile_EmptyReport(t *testing.T) {
	files, err := Reconcile(&Report{}, &memFS{}, []string{"a.scala"})
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = Reconcile(nil, &memFS{}, []string{"a.scala"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReconcile_OSFileSystem(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src", "main", "scala", "foo")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Bar.scala"),
		[]byte("package foo\n\nobject Bar {\n  def a = 1\n}\n"), 0o644))

	report, err := ParseReport([]byte(sampleReport))
	require.NoError(t, err)

	files, err := Reconcile(report, OSFileSystem{Root: root}, []string{
		"src/main/scala/foo/Bar.scala",
		"src/main/scala/foo/Baz.scala",
	})
	require.NoError(t, err)
	assert.Equal(t, FileMap{"src/main/scala/foo/Bar.scala": "NNUNN"}, files)
}

func TestOSFileSystem(t *testing.T) {
	root := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	write("empty.txt", "")
	write("one.txt", "x")
	write("two.txt", "a\nb\n")
	write("blank.txt", "\n\n\n")
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))

	fsys := OSFileSystem{Root: root}
	assert.True(t, fsys.Exists("two.txt"))
	assert.False(t, fsys.Exists("nope.txt"))
	assert.False(t, fsys.Exists("dir"))

	for name, want := range map[string]int{"empty.txt": 0, "one.txt": 1, "two.txt": 2, "blank.txt": 3} {
		n, err := fsys.LineCount(name)
		require.NoError(t, err)
		assert.Equal(t, want, n, name)
	}

	_, err := fsys.LineCount("nope.txt")
	assert.Error(t, err)
}
