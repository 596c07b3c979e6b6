// Package embed converts a resolved model into a self-contained document
// whose buffer, image and shader URIs are base64 data URIs.
package embed

import (
	"errors"
	"fmt"

	"gltf-toolkit/internal/datauri"
	"gltf-toolkit/internal/gltf"
	"gltf-toolkit/internal/mimetype"
	"gltf-toolkit/internal/model"
)

// Default content types of embedded payloads.
const (
	DefaultBufferContentType = "application/octet-stream"
	DefaultShaderContentType = "text/plain"
)

// ErrUndeterminedContentType is matched by UndeterminedContentTypeError.
var ErrUndeterminedContentType = errors.New("could not detect MIME type of image")

// UndeterminedContentTypeError names the image whose type neither the URI
// extension nor the payload signature reveals.
type UndeterminedContentTypeError struct {
	Index int
	ID    string
	URI   string
}

func (e *UndeterminedContentTypeError) Error() string {
	return fmt.Sprintf("embed: %v %d (id %q, uri %q)", ErrUndeterminedContentType, e.Index, e.ID, e.URI)
}

// Is reports whether target is ErrUndeterminedContentType.
func (e *UndeterminedContentTypeError) Is(target error) bool {
	return target == ErrUndeterminedContentType
}

// Converter embeds external payloads. The zero value is ready to use.
type Converter struct {
	// BufferContentType tags buffer data URIs. Empty means
	// DefaultBufferContentType; "application/gltf-buffer" is the glTF 2.0 choice.
	BufferContentType string
	// ShaderContentType tags shader data URIs. Empty means DefaultShaderContentType.
	ShaderContentType string
	// SkipShaders leaves shader URIs untouched.
	SkipShaders bool
	// VerifyImages requires the header of every embedded image to decode as
	// its inferred type. Types without a Go decoder (KTX2, DDS) are not checked.
	VerifyImages bool
}

// Embed returns a copy of m's document in which every buffer, image and
// shader with a payload is referenced by a data URI. m is not modified.
// Entries that are already data URIs, or have no URI, are copied as they are.
// Any image with an undetectable type fails the whole call.
func (c Converter) Embed(m *model.Model) (*gltf.Document, error) {
	doc, err := m.Document().Clone()
	if err != nil {
		return nil, fmt.Errorf("embed: copy document: %w", err)
	}

	bufferType := c.BufferContentType
	if bufferType == "" {
		bufferType = DefaultBufferContentType
	}
	buffers := m.Buffers()
	for i, id := range doc.Buffers.Keys() {
		b, _ := doc.Buffers.Get(id)
		if !needsEmbedding(b.URI) {
			continue
		}
		b.URI = datauri.Encode(bufferType, buffers[i].Data())
		doc.Buffers.Set(id, b)
	}

	images := m.Images()
	for i, id := range doc.Images.Keys() {
		img, _ := doc.Images.Get(id)
		if !needsEmbedding(img.URI) {
			continue
		}
		uri, err := c.embedImage(images[i])
		if err != nil {
			return nil, err
		}
		img.URI = uri
		doc.Images.Set(id, img)
	}

	if !c.SkipShaders {
		shaderType := c.ShaderContentType
		if shaderType == "" {
			shaderType = DefaultShaderContentType
		}
		shaders := m.Shaders()
		for i, id := range doc.Shaders.Keys() {
			s, _ := doc.Shaders.Get(id)
			if !needsEmbedding(s.URI) {
				continue
			}
			s.URI = datauri.Encode(shaderType, shaders[i].Source())
			doc.Shaders.Set(id, s)
		}
	}

	return doc, nil
}

func (c Converter) embedImage(img *model.Image) (string, error) {
	data := img.Data()
	mt := mimetype.Guess(img.URI, data)
	if mt == "" {
		return "", &UndeterminedContentTypeError{Index: img.Index, ID: img.ID, URI: img.URI}
	}
	if c.VerifyImages && mimetype.CanDecode(mt) {
		if _, err := mimetype.DecodeConfig(mt, data); err != nil {
			return "", fmt.Errorf("embed: image %d (id %q): %w", img.Index, img.ID, err)
		}
	}
	return datauri.Encode(mt, data), nil
}

func needsEmbedding(uri string) bool {
	return uri != "" && !datauri.Is(uri)
}
