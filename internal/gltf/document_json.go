package gltf

import (
	"bytes"
	"encoding/json"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// document has Document's fields without its JSON methods.
type document Document

var knownMembers = sync.OnceValue(func() map[string]bool {
	known := make(map[string]bool)
	t := reflect.TypeFor[document]()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			known[name] = true
		}
	}
	return known
})

// UnmarshalJSON decodes the known members and keeps every other top-level
// member in Unknown.
func (doc *Document) UnmarshalJSON(data []byte) error {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	known := knownMembers()
	for k := range members {
		if known[k] {
			delete(members, k)
		}
	}
	if len(members) > 0 {
		d.Unknown = members
	}

	*doc = Document(d)
	return nil
}

// MarshalJSON writes the known members, then Unknown in key order.
func (doc Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(document(doc)); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	if len(doc.Unknown) == 0 {
		return out, nil
	}

	known := knownMembers()
	out = out[:len(out)-1] // drop '}'
	first := len(out) == 1
	for _, k := range slices.Sorted(maps.Keys(doc.Unknown)) {
		if known[k] {
			continue
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if !first {
			out = append(out, ',')
		}
		first = false
		out = append(out, key...)
		out = append(out, ':')
		if v := doc.Unknown[k]; len(v) > 0 {
			out = append(out, v...)
		} else {
			out = append(out, "null"...)
		}
	}
	return append(out, '}'), nil
}
