package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gltf-toolkit/internal/datauri"
	"gltf-toolkit/internal/embed"
	"gltf-toolkit/internal/gltf"
)

const goodJSON = `{
  "asset": {"version": "1.0"},
  "buffers": {"geo": {"uri": "geo.bin", "byteLength": 3}},
  "shaders": {"vs": {"uri": "duck.vert", "type": 35633}},
  "images": {"skin": {"uri": "skin.png"}},
  "meshes": {"m": {"primitives": [{"attributes": {"POSITION": "gone"}}]}}
}`

const unknownImageJSON = `{
  "asset": {"version": "1.0"},
  "images": {"first": {"uri": "a.png"}, "blob": {"uri": "blob"}}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func setup(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "duck.gltf"), goodJSON)
	writeFile(t, filepath.Join(dir, "geo.bin"), "\x01\x02\x03")
	writeFile(t, filepath.Join(dir, "duck.vert"), "void main() {}")
	writeFile(t, filepath.Join(dir, "skin.png"), "\x89PNG\r\n\x1a\n")
	writeFile(t, filepath.Join(dir, "odd.gltf"), unknownImageJSON)
	writeFile(t, filepath.Join(dir, "a.png"), "\x89PNG\r\n\x1a\n")
	writeFile(t, filepath.Join(dir, "blob"), "????")
	return dir, []string{
		filepath.Join(dir, "duck.gltf"),
		filepath.Join(dir, "odd.gltf"),
		filepath.Join(dir, "missing.gltf"),
	}
}

func TestRun(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	_, inputs := setup(t)
	out := t.TempDir()
	cfg := Config{OutputDir: out, Suffix: ".embedded", Workers: 2}

	results := Run(cfg, inputs)
	require.Len(t, results, 3)

	duck := results[0]
	assert.True(t, duck.Success, duck.Error)
	assert.Equal(t, "duck", duck.Name)
	assert.Equal(t, filepath.Join(out, "duck.embedded.gltf"), duck.Output)
	assert.Equal(t, 1, duck.Buffers)
	assert.Equal(t, 1, duck.Images)
	assert.Equal(t, 1, duck.Shaders)
	assert.Equal(t, 1, duck.Dangling)

	raw, err := os.ReadFile(duck.Output)
	require.NoError(t, err)
	doc, err := gltf.Decode(strings.NewReader(string(raw)))
	require.NoError(t, err)
	b, _ := doc.Buffers.Get("geo")
	assert.True(t, datauri.Is(b.URI))
	img, _ := doc.Images.Get("skin")
	assert.Equal(t, "image/png", datauri.MediaType(img.URI))

	odd := results[1]
	assert.False(t, odd.Success)
	assert.Contains(t, odd.Error, "image 1")
	_, err = os.Stat(odd.Output)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.False(t, results[2].Success)
	assert.Equal(t, 2, Failed(results))

	assert.Equal(t, 2, logs.FilterMessage("asset failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("batch finished").Len())
}

func TestRun_SkipShaders(t *testing.T) {
	_, inputs := setup(t)
	cfg := Config{
		OutputDir: t.TempDir(),
		Suffix:    "-x",
		Workers:   1,
		Converter: embed.Converter{SkipShaders: true},
	}
	results := Run(cfg, inputs[:1])
	require.True(t, results[0].Success, results[0].Error)
	assert.Zero(t, results[0].Shaders)

	raw, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"duck.vert"`)
}

func TestOutputPath(t *testing.T) {
	cfg := Config{OutputDir: "out", Suffix: ".embedded"}
	assert.Equal(t, filepath.Join("out", "Box.embedded.gltf"), OutputPath(cfg, filepath.Join("models", "Box.gltf")))
	assert.Equal(t, filepath.Join("out", "noext.embedded.gltf"), OutputPath(cfg, "noext"))
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{Name: "a", Input: "a.gltf", Output: "out/a.gltf", Buffers: 2, Success: true},
		{Name: "b", Input: "b.gltf", Output: "out/b.gltf", Error: "boom"},
	}
	require.NoError(t, WriteManifest(path, results))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "out/a.gltf", entries[0].Output)
	assert.Equal(t, 2, entries[0].Buffers)
	assert.Empty(t, entries[1].Output)
	assert.Equal(t, "boom", entries[1].Error)
}

func TestRun_OutputCollision(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	root := t.TempDir()
	var inputs []string
	for _, sub := range []string{"a", "b"} {
		dir := filepath.Join(root, sub)
		require.NoError(t, os.MkdirAll(dir, 0755))
		writeFile(t, filepath.Join(dir, "duck.gltf"), `{"asset": {"version": "1.0"}, "buffers": {"b": {"uri": "duck.bin"}}}`)
		writeFile(t, filepath.Join(dir, "duck.bin"), sub)
		inputs = append(inputs, filepath.Join(dir, "duck.gltf"))
	}

	out := t.TempDir()
	results := Run(Config{OutputDir: out, Suffix: ".embedded", Workers: 4}, inputs)
	require.Len(t, results, 2)

	assert.True(t, results[0].Success, results[0].Error)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, inputs[0])
	assert.Equal(t, results[0].Output, results[1].Output)
	assert.Equal(t, 1, logs.FilterMessage("asset failed").Len())

	raw, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	doc, err := gltf.Decode(strings.NewReader(string(raw)))
	require.NoError(t, err)
	b, _ := doc.Buffers.Get("b")
	parsed, err := datauri.Parse(b.URI)
	require.NoError(t, err)
	assert.Equal(t, "a", string(parsed.Data))
}

func TestRun_Confine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "secret.bin"), "secret")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "model"), 0755))
	input := filepath.Join(root, "model", "leak.gltf")
	writeFile(t, input, `{"buffers": {"b": {"uri": "../secret.bin"}}}`)

	results := Run(Config{OutputDir: t.TempDir(), Suffix: ".embedded", Confine: true}, []string{input})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "outside asset directory")
}
