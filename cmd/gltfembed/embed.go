package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gltf-toolkit/internal/batch"
	"gltf-toolkit/internal/config"
	"gltf-toolkit/internal/embed"
)

var embedFlags config.Flags

var embedCmd = &cobra.Command{
	Use:   "embed <file.gltf>...",
	Short: "Write self-contained copies of glTF assets",
	Long: `Reads each glTF 1.0 asset, inlines every external buffer, image and
shader as a base64 data URI, and writes <output>/<name><suffix>.gltf.
A manifest.json describing every input is written to the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEmbed,
}

func init() {
	f := embedCmd.Flags()
	f.StringVarP(&embedFlags.OutputDir, "output", "o", "", "output directory (default .)")
	f.IntVarP(&embedFlags.Workers, "workers", "w", 0, "number of worker goroutines (default: NumCPU)")
	f.StringVar(&embedFlags.BufferContentType, "buffer-type", "", "content type of buffer data URIs (default application/octet-stream)")
	f.BoolVar(&embedFlags.SkipShaders, "no-shaders", false, "leave shader URIs external")
	f.BoolVar(&embedFlags.VerifyImages, "verify", false, "require every image header to decode")
	f.BoolVar(&embedFlags.Indent, "indent", false, "pretty-print the output JSON")
	f.BoolVar(&embedFlags.ConfinePaths, "confine", false, "refuse payload URIs outside each asset's directory")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	cfg.Resolve(embedFlags)

	bc := batch.Config{
		OutputDir: cfg.OutputDir,
		Suffix:    cfg.Suffix,
		Workers:   cfg.Workers,
		Indent:    cfg.Indent,
		Confine:   cfg.ConfinePaths,
		Converter: embed.Converter{
			BufferContentType: cfg.BufferContentType,
			SkipShaders:       cfg.SkipShaders,
			VerifyImages:      cfg.VerifyImages,
		},
	}

	log.Info("embedding",
		zap.Int("assets", len(args)),
		zap.Int("workers", bc.Workers),
		zap.String("output", bc.OutputDir))

	start := time.Now()
	results := batch.Run(bc, args)

	for _, r := range results {
		if r.Success {
			cmd.Printf("%s -> %s\n", r.Input, r.Output)
		} else {
			cmd.Printf("%s: %s\n", r.Input, r.Error)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warn("manifest write failed", zap.Error(err))
	}

	failed := batch.Failed(results)
	cmd.Printf("Embedded %d/%d in %.1fs\n", len(results)-failed, len(results), time.Since(start).Seconds())
	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed", failed, len(results))
	}
	return nil
}
