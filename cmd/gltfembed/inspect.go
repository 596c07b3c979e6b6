package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gltf-toolkit/internal/asset"
	"gltf-toolkit/internal/mathutil"
	"gltf-toolkit/internal/refindex"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.gltf>",
	Short: "List the dense index of every entity and any dangling references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := asset.Open(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		idx := m.Index()
		for _, c := range refindex.Categories() {
			n := idx.Len(c)
			if n == 0 {
				continue
			}
			fmt.Fprintf(w, "%s (%d)\n", c, n)
			for i, id := range idx.IDs(c) {
				if c == refindex.Nodes {
					// world-space origin of the node
					p := m.Nodes()[i].WorldMatrix().MulPoint(mathutil.Vec3{})
					fmt.Fprintf(w, "  %d\t%s\t(%g, %g, %g)\n", i, id, p[0], p[1], p[2])
					continue
				}
				fmt.Fprintf(w, "  %d\t%s\n", i, id)
			}
		}

		dangling := m.Dangling()
		if len(dangling) > 0 {
			fmt.Fprintf(w, "dangling (%d)\n", len(dangling))
			for _, d := range dangling {
				fmt.Fprintf(w, "  %s\n", d)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
