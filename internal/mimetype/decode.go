package mimetype

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrNoDecoder is returned for MIME types without a Go image decoder (KTX2, DDS).
var ErrNoDecoder = errors.New("no decoder for image type")

type codec struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

// Decoders are picked by MIME type instead of image.Decode sniffing,
// since TGA has no magic bytes.
var codecs = map[string]codec{
	PNG:  {png.Decode, png.DecodeConfig},
	JPEG: {jpeg.Decode, jpeg.DecodeConfig},
	GIF:  {gif.Decode, gif.DecodeConfig},
	BMP:  {bmp.Decode, bmp.DecodeConfig},
	WebP: {webp.Decode, webp.DecodeConfig},
	TIFF: {tiff.Decode, tiff.DecodeConfig},
	TGA:  {tga.Decode, tga.DecodeConfig},
}

// CanDecode reports whether Decode supports mimeType.
func CanDecode(mimeType string) bool {
	_, ok := codecs[mimeType]
	return ok
}

// DecodeConfig reads the image header of data as mimeType.
func DecodeConfig(mimeType string, data []byte) (image.Config, error) {
	c, ok := codecs[mimeType]
	if !ok {
		return image.Config{}, fmt.Errorf("mimetype: %w %q", ErrNoDecoder, mimeType)
	}
	cfg, err := c.decodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, fmt.Errorf("mimetype: decode %s header: %w", mimeType, err)
	}
	return cfg, nil
}

// Decode decodes data as mimeType.
func Decode(mimeType string, data []byte) (image.Image, error) {
	c, ok := codecs[mimeType]
	if !ok {
		return nil, fmt.Errorf("mimetype: %w %q", ErrNoDecoder, mimeType)
	}
	img, err := c.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mimetype: decode %s: %w", mimeType, err)
	}
	return img, nil
}
