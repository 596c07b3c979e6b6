// Package asset reads glTF 1.0 files and their external payloads from disk
// and writes converted documents back.
package asset

import (
	"fmt"
	"os"
	"path/filepath"

	"gltf-toolkit/internal/gltf"
	"gltf-toolkit/internal/model"
	"gltf-toolkit/internal/refindex"
)

// Options tune how Open reads payloads.
type Options struct {
	// Confine restricts payload URIs to the asset's directory; see FileLoader.Confine.
	Confine bool
}

// Open reads and resolves the asset at path. Relative payload URIs are read
// from the asset's directory.
func Open(path string) (*model.Model, error) {
	return OpenWith(path, Options{})
}

// OpenWith is Open with options.
func OpenWith(path string, opts Options) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := gltf.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("asset: %s: %w", path, err)
	}

	loader := NewCache(&FileLoader{BaseDir: filepath.Dir(path), Confine: opts.Confine})
	m, err := model.Resolve(doc, refindex.Build(doc), loader)
	if err != nil {
		return nil, fmt.Errorf("asset: %s: %w", path, err)
	}
	return m, nil
}

// Write encodes doc to path, creating parent directories.
func Write(path string, doc *gltf.Document, indent bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("asset: write %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("asset: write %s: %w", path, err)
	}
	if err := gltf.Encode(f, doc, indent); err != nil {
		f.Close()
		return fmt.Errorf("asset: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("asset: write %s: %w", path, err)
	}
	return nil
}
