package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedScheme is returned for URIs such as http:// that are not files.
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
	// ErrOutsideBaseDir is returned by a confined FileLoader for a URI that
	// resolves outside BaseDir.
	ErrOutsideBaseDir = errors.New("path outside asset directory")
)

// FileLoader reads payloads relative to the directory of the asset.
// When an exact path does not exist it retries case-insensitively,
// for assets authored on case-insensitive filesystems.
type FileLoader struct {
	BaseDir string
	// Confine rejects URIs leaving BaseDir, such as "../secret" or an
	// absolute file: path. The check is lexical; symlinks are not resolved.
	Confine bool

	once  sync.Once
	index *Index
}

// Load reads the file behind uri.
func (l *FileLoader) Load(uri string) ([]byte, error) {
	p, err := l.path(uri)
	if err != nil {
		return nil, err
	}
	if l.Confine && !within(l.BaseDir, p) {
		return nil, fmt.Errorf("asset: read %s: %w", uri, ErrOutsideBaseDir)
	}
	data, err := os.ReadFile(p)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("asset: read %s: %w", uri, err)
	}

	if !within(l.BaseDir, p) {
		return nil, fmt.Errorf("asset: read %s: %w", uri, err)
	}
	rel, _ := filepath.Rel(l.BaseDir, p)
	l.once.Do(func() { l.index = BuildIndex(l.BaseDir) })
	alt, ok := l.index.ResolvePath(rel)
	if !ok {
		return nil, fmt.Errorf("asset: read %s: %w", uri, err)
	}
	data, err = os.ReadFile(alt)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", uri, err)
	}
	return data, nil
}

func (l *FileLoader) path(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		// not a valid URL; take it as a plain relative path
		return l.join(uri), nil
	}
	switch {
	case u.Scheme == "":
		return l.join(u.Path), nil
	case strings.EqualFold(u.Scheme, "file"):
		return filepath.FromSlash(u.Path), nil
	case len(u.Scheme) == 1:
		// Windows drive letter, e.g. "C:/textures/a.png"
		return filepath.FromSlash(uri), nil
	default:
		return "", fmt.Errorf("asset: %w %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (l *FileLoader) join(p string) string {
	p = filepath.FromSlash(strings.ReplaceAll(p, "\\", "/"))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.BaseDir, p)
}

// within reports whether p lies inside dir, lexically.
func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
