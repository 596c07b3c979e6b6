package main

import (
	"github.com/spf13/cobra"

	"gltf-toolkit/internal/asset"
	"gltf-toolkit/internal/config"
	"gltf-toolkit/internal/preview"
)

var thumbsFlags config.Flags

var thumbsCmd = &cobra.Command{
	Use:   "thumbs <file.gltf>",
	Short: "Write WebP thumbnails of an asset's images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Resolve(thumbsFlags)

		m, err := asset.OpenWith(args[0], asset.Options{Confine: cfg.ConfinePaths})
		if err != nil {
			return err
		}
		written, err := preview.Run(m, cfg.OutputDir, cfg.ThumbSize, log)
		for _, p := range written {
			cmd.Println(p)
		}
		return err
	},
}

func init() {
	thumbsCmd.Flags().StringVarP(&thumbsFlags.OutputDir, "output", "o", "", "output directory (default .)")
	thumbsCmd.Flags().IntVar(&thumbsFlags.ThumbSize, "size", 0, "thumbnail edge length in pixels (default 128)")
	thumbsCmd.Flags().BoolVar(&thumbsFlags.ConfinePaths, "confine", false, "refuse payload URIs outside the asset's directory")
	rootCmd.AddCommand(thumbsCmd)
}
