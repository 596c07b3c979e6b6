package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one asset in the output manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Input    string `json:"input"`
	Output   string `json:"output,omitempty"`
	Buffers  int    `json:"buffers"`
	Images   int    `json:"images"`
	Shaders  int    `json:"shaders"`
	Dangling int    `json:"dangling"`
	Error    string `json:"error,omitempty"`
}

// WriteManifest writes the results as a JSON array to path.
// Failed assets keep their error and have no output.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:     r.Name,
			Input:    r.Input,
			Buffers:  r.Buffers,
			Images:   r.Images,
			Shaders:  r.Shaders,
			Dangling: r.Dangling,
			Error:    r.Error,
		}
		if r.Success {
			entries[i].Output = r.Output
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Failed counts the unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
