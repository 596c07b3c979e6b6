package asset

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps lowercase slash-separated relative paths to filesystem paths.
type Index struct {
	entries map[string]string
}

// BuildIndex scans dir and its subdirectories.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		key := strings.ToLower(filepath.ToSlash(rel))
		if _, exists := idx.entries[key]; !exists {
			idx.entries[key] = path
		}
		return nil
	})
	return idx
}

// ResolvePath returns the filesystem path for rel, ignoring case, or ("", false).
func (idx *Index) ResolvePath(rel string) (string, bool) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	key := strings.ToLower(strings.TrimPrefix(filepath.ToSlash(filepath.Clean(rel)), "./"))
	path, ok := idx.entries[key]
	return path, ok
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	return len(idx.entries)
}
