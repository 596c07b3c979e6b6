package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied by Resolve.
const (
	DefaultSuffix            = ".embedded"
	DefaultThumbSize         = 128
	DefaultBufferContentType = "application/octet-stream"
	DefaultLogLevel          = "info"
)

// Config holds output paths and conversion settings.
type Config struct {
	// Output
	OutputDir string `json:"output_dir" toml:"output_dir"`
	Suffix    string `json:"suffix" toml:"suffix"`
	Indent    bool   `json:"indent" toml:"indent"`

	// Conversion
	BufferContentType string `json:"buffer_content_type" toml:"buffer_content_type"`
	SkipShaders       bool   `json:"skip_shaders" toml:"skip_shaders"`
	VerifyImages      bool   `json:"verify_images" toml:"verify_images"`
	ConfinePaths      bool   `json:"confine_paths" toml:"confine_paths"`

	// Run settings
	Workers   int    `json:"workers" toml:"workers"`
	ThumbSize int    `json:"thumb_size" toml:"thumb_size"`
	LogLevel  string `json:"log_level" toml:"log_level"`
}

// Load reads a JSON or TOML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json", "":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir         string
	BufferContentType string
	LogLevel          string
	Workers           int
	ThumbSize         int
	SkipShaders       bool
	VerifyImages      bool
	ConfinePaths      bool
	Indent            bool
}

// Resolve applies flags over the file values, then fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.BufferContentType != "" {
		c.BufferContentType = flags.BufferContentType
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.ThumbSize > 0 {
		c.ThumbSize = flags.ThumbSize
	}
	c.SkipShaders = c.SkipShaders || flags.SkipShaders
	c.VerifyImages = c.VerifyImages || flags.VerifyImages
	c.ConfinePaths = c.ConfinePaths || flags.ConfinePaths
	c.Indent = c.Indent || flags.Indent

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if c.BufferContentType == "" {
		c.BufferContentType = DefaultBufferContentType
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.ThumbSize <= 0 {
		c.ThumbSize = DefaultThumbSize
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
