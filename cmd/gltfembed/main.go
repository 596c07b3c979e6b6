// Command gltfembed converts glTF 1.0 assets into self-contained files with
// every buffer, image and shader inlined as a base64 data URI.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
