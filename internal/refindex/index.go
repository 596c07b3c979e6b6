// Package refindex maps the string identifiers of a glTF 1.0 document to the
// dense integer indices used by the resolved model.
package refindex

import (
	"gltf-toolkit/internal/gltf"
)

// Index holds, per category, id → index and index → id tables.
// It is built once and never modified.
type Index struct {
	forward [numCategories]map[string]int
	reverse [numCategories][]string
}

// Build assigns every entry of every category its position in document order.
func Build(doc *gltf.Document) *Index {
	idx := &Index{}
	add := func(c Category, ids []string) {
		m := make(map[string]int, len(ids))
		for i, id := range ids {
			m[id] = i
		}
		idx.forward[c] = m
		idx.reverse[c] = ids
	}

	add(Buffers, doc.Buffers.Keys())
	add(BufferViews, doc.BufferViews.Keys())
	add(Accessors, doc.Accessors.Keys())
	add(Shaders, doc.Shaders.Keys())
	add(Programs, doc.Programs.Keys())
	add(Techniques, doc.Techniques.Keys())
	add(Images, doc.Images.Keys())
	add(Samplers, doc.Samplers.Keys())
	add(Textures, doc.Textures.Keys())
	add(Materials, doc.Materials.Keys())
	add(Meshes, doc.Meshes.Keys())
	add(Cameras, doc.Cameras.Keys())
	add(Skins, doc.Skins.Keys())
	add(Nodes, doc.Nodes.Keys())
	add(Scenes, doc.Scenes.Keys())
	add(Animations, doc.Animations.Keys())

	return idx
}

// Lookup returns the index of id in category c, or (0, false) if unknown.
func (idx *Index) Lookup(c Category, id string) (int, bool) {
	if idx == nil || c >= numCategories {
		return 0, false
	}
	i, ok := idx.forward[c][id]
	return i, ok
}

// ID returns the identifier at index i of category c.
func (idx *Index) ID(c Category, i int) (string, bool) {
	if idx == nil || c >= numCategories || i < 0 || i >= len(idx.reverse[c]) {
		return "", false
	}
	return idx.reverse[c][i], true
}

// Len returns the number of entries in category c.
func (idx *Index) Len(c Category) int {
	if idx == nil || c >= numCategories {
		return 0
	}
	return len(idx.reverse[c])
}

// IDs returns the identifiers of category c in index order.
func (idx *Index) IDs(c Category) []string {
	if idx == nil || c >= numCategories {
		return nil
	}
	out := make([]string, len(idx.reverse[c]))
	copy(out, idx.reverse[c])
	return out
}
