// Package preview writes WebP thumbnails of the images embedded in or
// referenced by a model.
package preview

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"gltf-toolkit/internal/mimetype"
	"gltf-toolkit/internal/model"
)

// DefaultSize is the thumbnail edge length in pixels.
const DefaultSize = 128

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// WriteWebP encodes img losslessly to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("preview: WebP encode %s: %w", path, err)
	}
	return f.Close()
}

// Run writes one <index>_<id>.webp thumbnail per decodable image into outDir
// and returns the written paths. Images without a payload or of an
// undecodable type are skipped with a warning.
func Run(m *model.Model, outDir string, size int, log *zap.Logger) ([]string, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	var written []string
	for _, img := range m.Images() {
		if len(img.Data()) == 0 {
			continue
		}
		mt := img.MimeType()
		if !mimetype.CanDecode(mt) {
			log.Warn("skipping image without decoder",
				zap.Int("index", img.Index),
				zap.String("id", img.ID),
				zap.String("mimeType", mt))
			continue
		}
		decoded, err := mimetype.Decode(mt, img.Data())
		if err != nil {
			log.Warn("skipping undecodable image",
				zap.Int("index", img.Index),
				zap.String("id", img.ID),
				zap.Error(err))
			continue
		}

		name := fmt.Sprintf("%d_%s.webp", img.Index, unsafeName.ReplaceAllString(img.ID, "_"))
		path := filepath.Join(outDir, name)
		if err := WriteWebP(path, Thumbnail(decoded, size)); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
