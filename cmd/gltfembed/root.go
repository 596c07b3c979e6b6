package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gltf-toolkit/internal/batch"
	"gltf-toolkit/internal/config"
	"gltf-toolkit/internal/model"
)

var (
	configFile string
	logLevel   string

	// cfg is loaded in PersistentPreRunE; subcommands overlay their flags.
	cfg config.Config
)

var log = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:               "gltfembed",
	Short:             "Inline the external resources of glTF 1.0 assets",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// loadConfig reads --config and installs a logger at the configured level.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg = config.Config{}
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = config.DefaultLogLevel
	}

	l, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	installLogger(l)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a .json or .toml config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default info)")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = lvl
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zc.Build()
}

func installLogger(l *zap.Logger) {
	log = l
	model.SetLogger(l)
	batch.SetLogger(l)
}
