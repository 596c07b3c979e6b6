package gltf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
)

// ErrDuplicateID is returned when an object declares the same identifier twice.
var ErrDuplicateID = errors.New("duplicate id")

// Dict is an identifier-keyed JSON object that remembers key order.
// Position in Keys() is the entity's index in the resolved model.
type Dict[T any] struct {
	keys []string
	vals map[string]T
}

// Len returns the number of entries.
func (d *Dict[T]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the identifiers in document order.
func (d *Dict[T]) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Get returns the entry for id.
func (d *Dict[T]) Get(id string) (T, bool) {
	var zero T
	if d == nil || d.vals == nil {
		return zero, false
	}
	v, ok := d.vals[id]
	return v, ok
}

// Set replaces the entry for id in place, or appends it if new.
func (d *Dict[T]) Set(id string, v T) {
	if d.vals == nil {
		d.vals = make(map[string]T)
	}
	if _, exists := d.vals[id]; !exists {
		d.keys = append(d.keys, id)
	}
	d.vals[id] = v
}

// All iterates entries in document order.
func (d *Dict[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.vals[k]) {
				return
			}
		}
	}
}

// IsZero reports whether the dict is empty, so omitempty-style encoding can skip it.
func (d Dict[T]) IsZero() bool {
	return len(d.keys) == 0
}

// UnmarshalJSON decodes an object token by token to keep key order.
func (d *Dict[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		// null
		d.keys, d.vals = nil, nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("gltf: expected object, got %v", tok)
	}

	d.keys = d.keys[:0]
	d.vals = make(map[string]T)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string) // object keys are always strings
		if _, dup := d.vals[key]; dup {
			return fmt.Errorf("gltf: %w %q", ErrDuplicateID, key)
		}
		var v T
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("gltf: %q: %w", key, err)
		}
		d.keys = append(d.keys, key)
		d.vals[key] = v
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON writes entries in document order.
func (d Dict[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.vals[k])
		if err != nil {
			return nil, fmt.Errorf("gltf: %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
