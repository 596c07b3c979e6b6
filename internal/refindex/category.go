package refindex

import "fmt"

// Category is a kind of referenceable entity.
// Values are ordered so that every category only refers to earlier ones,
// except nodes, which also refer to other nodes.
type Category uint8

const (
	Buffers Category = iota
	BufferViews
	Accessors
	Shaders
	Programs
	Techniques
	Images
	Samplers
	Textures
	Materials
	Meshes
	Cameras
	Skins
	Nodes
	Scenes
	Animations

	numCategories
)

var categoryNames = [numCategories]string{
	Buffers:     "buffers",
	BufferViews: "bufferViews",
	Accessors:   "accessors",
	Shaders:     "shaders",
	Programs:    "programs",
	Techniques:  "techniques",
	Images:      "images",
	Samplers:    "samplers",
	Textures:    "textures",
	Materials:   "materials",
	Meshes:      "meshes",
	Cameras:     "cameras",
	Skins:       "skins",
	Nodes:       "nodes",
	Scenes:      "scenes",
	Animations:  "animations",
}

// String returns the document key of the category, e.g. "bufferViews".
func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory maps a document key back to its Category.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return Category(c), true
		}
	}
	return 0, false
}

// Categories returns all categories in resolution order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}
