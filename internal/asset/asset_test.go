package asset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gltf-toolkit/internal/gltf"
	"gltf-toolkit/internal/model"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestFileLoader_Relative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bin", "mesh data.bin"), []byte{1, 2, 3})

	l := &FileLoader{BaseDir: dir}
	data, err := l.Load("bin/mesh%20data.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	data, err = l.Load(`bin\mesh data.bin`)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestFileLoader_CaseInsensitiveFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Textures", "Duck.PNG"), []byte("png"))

	l := &FileLoader{BaseDir: dir}
	data, err := l.Load("textures/duck.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestFileLoader_FileScheme(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "abs.bin")
	writeFile(t, p, []byte{9})

	l := &FileLoader{BaseDir: "/nonexistent"}
	data, err := l.Load("file://" + filepath.ToSlash(p))
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, data)
}

func TestFileLoader_Errors(t *testing.T) {
	l := &FileLoader{BaseDir: t.TempDir()}

	_, err := l.Load("https://example.com/duck.bin")
	assert.True(t, errors.Is(err, ErrUnsupportedScheme))

	_, err = l.Load("missing.bin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.bin"), nil)
	writeFile(t, filepath.Join(dir, "Sub", "B.glsl"), nil)

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	p, ok := idx.ResolvePath(`SUB\b.GLSL`)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Sub", "B.glsl"), p)

	p, ok = idx.ResolvePath("./a.bin")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "A.bin"), p)

	_, ok = idx.ResolvePath("c.bin")
	assert.False(t, ok)
}

func TestCache_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(model.LoaderFunc(func(uri string) ([]byte, error) {
		calls.Add(1)
		if uri == "bad" {
			return nil, errors.New("boom")
		}
		return []byte(uri), nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := c.Load("a")
			assert.NoError(t, err)
			assert.Equal(t, "a", string(data))
		}()
	}
	wg.Wait()

	_, err := c.Load("bad")
	assert.Error(t, err)
	_, err = c.Load("bad")
	assert.Error(t, err)

	assert.Equal(t, 2, c.Len())
	// concurrent misses may race to the loader, but the cached value wins afterwards
	before := calls.Load()
	_, _ = c.Load("a")
	assert.Equal(t, before, calls.Load())
}

const duckJSON = `{
  "asset": {"version": "1.0"},
  "buffers": {"duck": {"uri": "duck.bin", "byteLength": 4}},
  "bufferViews": {
    "a": {"buffer": "duck", "byteLength": 2},
    "b": {"buffer": "duck", "byteOffset": 2, "byteLength": 2}
  },
  "images": {"tex": {"uri": "tex/Duck.png"}}
}`

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "duck.gltf"), []byte(duckJSON))
	writeFile(t, filepath.Join(dir, "duck.bin"), []byte{1, 2, 3, 4})
	writeFile(t, filepath.Join(dir, "tex", "Duck.png"), []byte("\x89PNG\r\n\x1a\n"))

	m, err := Open(filepath.Join(dir, "duck.gltf"))
	require.NoError(t, err)

	require.Len(t, m.Buffers(), 1)
	assert.Equal(t, []byte{1, 2, 3, 4}, m.Buffers()[0].Data())
	view, err := m.BufferViews()[1].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, view)
	assert.Equal(t, "image/png", m.Images()[0].MimeType())
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "nope.gltf"))
	assert.Error(t, err)

	writeFile(t, filepath.Join(dir, "bad.gltf"), []byte("{"))
	_, err = Open(filepath.Join(dir, "bad.gltf"))
	assert.Error(t, err)

	writeFile(t, filepath.Join(dir, "dangling.gltf"), []byte(duckJSON))
	_, err = Open(filepath.Join(dir, "dangling.gltf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duck.bin")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	doc := &gltf.Document{Asset: gltf.Asset{Version: "1.0"}}
	doc.Buffers.Set("b", gltf.Buffer{URI: "data:application/octet-stream;base64,AQ==", ByteLength: 1})

	out := filepath.Join(dir, "nested", "out.gltf")
	require.NoError(t, Write(out, doc, true))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	back, err := gltf.Decode(strings.NewReader(string(raw)))
	require.NoError(t, err)
	b, ok := back.Buffers.Get("b")
	require.True(t, ok)
	assert.Equal(t, 1, b.ByteLength)
}

func TestFileLoader_Confine(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "model")
	writeFile(t, filepath.Join(base, "in.bin"), []byte("in"))
	writeFile(t, filepath.Join(root, "secret.bin"), []byte("secret"))

	open := &FileLoader{BaseDir: base}
	data, err := open.Load("../secret.bin")
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))

	confined := &FileLoader{BaseDir: base, Confine: true}
	data, err = confined.Load("in.bin")
	require.NoError(t, err)
	assert.Equal(t, "in", string(data))

	for _, uri := range []string{
		"../secret.bin",
		`..\secret.bin`,
		"sub/../../secret.bin",
		"file://" + filepath.ToSlash(filepath.Join(root, "secret.bin")),
	} {
		_, err := confined.Load(uri)
		assert.ErrorIs(t, err, ErrOutsideBaseDir, uri)
	}
}

func TestOpenWith_Confine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "secret.bin"), []byte("secret"))
	path := filepath.Join(root, "model", "leak.gltf")
	writeFile(t, path, []byte(`{"buffers": {"b": {"uri": "../secret.bin"}}}`))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(m.Buffers()[0].Data()))

	_, err = OpenWith(path, Options{Confine: true})
	assert.ErrorIs(t, err, ErrOutsideBaseDir)
}
