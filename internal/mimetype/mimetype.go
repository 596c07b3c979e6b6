// Package mimetype infers the MIME type of image payloads from a URI
// extension hint or from the payload's leading bytes.
package mimetype

import (
	"path"
	"strings"
	"sync"

	"gltf-toolkit/internal/datauri"
)

// Known image MIME types.
const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
	GIF  = "image/gif"
	BMP  = "image/bmp"
	WebP = "image/webp"
	TIFF = "image/tiff"
	TGA  = "image/x-tga"
	KTX2 = "image/ktx2"
	DDS  = "image/vnd-ms.dds"
)

var extensions = map[string]string{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".jpe":  JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".webp": WebP,
	".tif":  TIFF,
	".tiff": TIFF,
	".tga":  TGA,
	".ktx2": KTX2,
	".dds":  DDS,
}

// Signature is a magic byte pattern at the start of a payload.
// A '?' byte in Magic matches any byte, as in image.RegisterFormat.
type Signature struct {
	MimeType string
	Magic    string
}

func (s Signature) match(data []byte) bool {
	if len(data) < len(s.Magic) {
		return false
	}
	for i := 0; i < len(s.Magic); i++ {
		if s.Magic[i] != '?' && s.Magic[i] != data[i] {
			return false
		}
	}
	return true
}

var (
	sigMu      sync.RWMutex
	signatures = []Signature{
		{PNG, "\x89PNG\r\n\x1a\n"},
		{JPEG, "\xff\xd8\xff"},
		{GIF, "GIF87a"},
		{GIF, "GIF89a"},
		{WebP, "RIFF????WEBP"},
		{BMP, "BM"},
		{TIFF, "II*\x00"},
		{TIFF, "MM\x00*"},
		{KTX2, "\xabKTX 20\xbb\r\n\x1a\n"},
		{DDS, "DDS "},
	}
)

// Register adds a signature. It is consulted after all earlier ones.
func Register(mimeType, magic string) {
	sigMu.Lock()
	defer sigMu.Unlock()
	signatures = append(signatures, Signature{MimeType: mimeType, Magic: magic})
}

// Sniff returns the MIME type whose signature matches data, or "".
func Sniff(data []byte) string {
	sigMu.RLock()
	defer sigMu.RUnlock()
	for _, s := range signatures {
		if s.match(data) {
			return s.MimeType
		}
	}
	return ""
}

// FromExtension returns the MIME type implied by the URI's file extension.
// For a data URI it returns the declared media type, if any.
func FromExtension(uri string) string {
	if uri == "" {
		return ""
	}
	if datauri.Is(uri) {
		return datauri.MediaType(uri)
	}
	p := uri
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return extensions[strings.ToLower(path.Ext(p))]
}

// Guess consults the URI extension first, then the payload signature.
// It returns "" if neither identifies the type.
func Guess(uri string, data []byte) string {
	if mt := FromExtension(uri); mt != "" {
		return mt
	}
	return Sniff(data)
}
