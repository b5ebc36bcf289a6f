package coverage

import (
	"bytes"
	"os"
	"path/filepath"
)

// FileSystem answers the questions Reconcile asks about source files. Paths
// are slash-separated and relative to the project root.
type FileSystem interface {
	Exists(path string) bool
	LineCount(path string) (int, error)
}

// OSFileSystem reads files from disk under Root.
type OSFileSystem struct {
	Root string
}

// Exists reports whether path names a regular file.
func (f OSFileSystem) Exists(path string) bool {
	info, err := os.Stat(f.resolve(path))
	return err == nil && info.Mode().IsRegular()
}

// LineCount returns the number of physical lines in path: one per newline,
// plus one for a final line without a trailing newline. An empty file has no
// lines.
func (f OSFileSystem) LineCount(path string) (int, error) {
	data, err := os.ReadFile(f.resolve(path))
	if err != nil {
		return 0, err
	}
	return CountLines(data), nil
}

func (f OSFileSystem) resolve(path string) string {
	return filepath.Join(f.Root, filepath.FromSlash(path))
}

// CountLines counts physical lines the way OSFileSystem does.
func CountLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}
