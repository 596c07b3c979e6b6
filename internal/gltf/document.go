package gltf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a glTF 1.0 JSON document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("gltf: decode: %w", err)
	}
	return &doc, nil
}

// Encode writes doc as JSON. Entities keep their document order.
func Encode(w io.Writer, doc *Document, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("gltf: encode: %w", err)
	}
	return nil
}

// Clone returns a deep copy that shares no memory with doc.
func (doc *Document) Clone() (*Document, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, false); err != nil {
		return nil, err
	}
	return Decode(&buf)
}
