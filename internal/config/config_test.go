package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_JSON(t *testing.T) {
	p := write(t, "cfg.json", `{"output_dir": "out", "workers": 3, "skip_shaders": true}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.SkipShaders)
	assert.Empty(t, cfg.Suffix)
}

func TestLoad_TOML(t *testing.T) {
	p := write(t, "cfg.toml", `
output_dir = "renders"
suffix = "-inline"
buffer_content_type = "application/gltf-buffer"
verify_images = true
confine_paths = true
thumb_size = 64
log_level = "debug"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Config{
		OutputDir:         "renders",
		Suffix:            "-inline",
		BufferContentType: "application/gltf-buffer",
		VerifyImages:      true,
		ConfinePaths:      true,
		ThumbSize:         64,
		LogLevel:          "debug",
	}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(write(t, "bad.toml", "workers = [oops"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(write(t, "cfg.yaml", "workers: 1"))
	assert.ErrorContains(t, err, "unsupported format")
}

func TestResolve_Defaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, DefaultSuffix, cfg.Suffix)
	assert.Equal(t, DefaultBufferContentType, cfg.BufferContentType)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultThumbSize, cfg.ThumbSize)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.False(t, cfg.SkipShaders)
}

func TestResolve_FlagsOverride(t *testing.T) {
	cfg := Config{OutputDir: "file", Workers: 2, LogLevel: "warn", Indent: true}
	cfg.Resolve(Flags{OutputDir: "flag", Workers: 8, SkipShaders: true})
	assert.Equal(t, "flag", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.SkipShaders)
	assert.True(t, cfg.Indent)
}
