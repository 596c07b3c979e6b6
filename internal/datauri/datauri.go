// Package datauri reads and writes RFC 2397 "data:" URIs.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	scheme = "data:"

	// DefaultMediaType applies when a data URI omits its media type.
	DefaultMediaType = "text/plain;charset=US-ASCII"
)

var (
	// ErrNotDataURI is returned when the input does not start with "data:".
	ErrNotDataURI = errors.New("not a data URI")
	// ErrMalformed is returned when the URI has no comma or a bad payload.
	ErrMalformed = errors.New("malformed data URI")
)

// URI is a parsed data URI.
type URI struct {
	MediaType string // e.g. "image/png"; parameters other than base64 are kept
	Base64    bool
	Data      []byte
}

// Is reports whether uri is a data URI. The scheme is case-insensitive.
func Is(uri string) bool {
	return len(uri) >= len(scheme) && strings.EqualFold(uri[:len(scheme)], scheme)
}

// Encode returns "data:<contentType>;base64,<payload>".
func Encode(contentType string, data []byte) string {
	enc := base64.StdEncoding
	var b strings.Builder
	b.Grow(len(scheme) + len(contentType) + len(";base64,") + enc.EncodedLen(len(data)))
	b.WriteString(scheme)
	b.WriteString(contentType)
	b.WriteString(";base64,")
	b.WriteString(enc.EncodeToString(data))
	return b.String()
}

// Parse decodes a data URI.
func Parse(uri string) (URI, error) {
	if !Is(uri) {
		return URI{}, ErrNotDataURI
	}
	rest := uri[len(scheme):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return URI{}, fmt.Errorf("datauri: %w: missing comma", ErrMalformed)
	}
	header, payload := rest[:comma], rest[comma+1:]

	var out URI
	var params []string
	for i, part := range strings.Split(header, ";") {
		if i == 0 {
			out.MediaType = strings.TrimSpace(part)
			continue
		}
		if strings.EqualFold(strings.TrimSpace(part), "base64") {
			out.Base64 = true
			continue
		}
		params = append(params, part)
	}
	if out.MediaType == "" {
		out.MediaType = DefaultMediaType
	} else if len(params) > 0 {
		out.MediaType += ";" + strings.Join(params, ";")
	}

	if out.Base64 {
		data, err := decodeBase64(payload)
		if err != nil {
			return URI{}, fmt.Errorf("datauri: %w: %v", ErrMalformed, err)
		}
		out.Data = data
		return out, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return URI{}, fmt.Errorf("datauri: %w: %v", ErrMalformed, err)
	}
	out.Data = []byte(text)
	return out, nil
}

// MediaType returns the media type of a data URI without decoding its payload.
func MediaType(uri string) string {
	if !Is(uri) {
		return ""
	}
	rest := uri[len(scheme):]
	if comma := strings.IndexByte(rest, ','); comma >= 0 {
		rest = rest[:comma]
	}
	mt, _, _ := strings.Cut(rest, ";")
	return strings.TrimSpace(mt)
}

// decodeBase64 accepts padded and unpadded payloads, as both occur in the wild.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "=") || len(s)%4 == 0 {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}
