package gltf

import "encoding/json"

// Document is the root of a glTF 1.0 asset, where entities are JSON objects
// keyed by identifier and refer to each other by those identifiers.
type Document struct {
	Asset          Asset    `json:"asset"`
	Scene          string   `json:"scene,omitempty"` // default scene id
	ExtensionsUsed []string `json:"extensionsUsed,omitempty"`

	Buffers     Dict[Buffer]     `json:"buffers,omitzero"`
	BufferViews Dict[BufferView] `json:"bufferViews,omitzero"`
	Accessors   Dict[Accessor]   `json:"accessors,omitzero"`
	Shaders     Dict[Shader]     `json:"shaders,omitzero"`
	Programs    Dict[Program]    `json:"programs,omitzero"`
	Techniques  Dict[Technique]  `json:"techniques,omitzero"`
	Images      Dict[Image]      `json:"images,omitzero"`
	Samplers    Dict[Sampler]    `json:"samplers,omitzero"`
	Textures    Dict[Texture]    `json:"textures,omitzero"`
	Materials   Dict[Material]   `json:"materials,omitzero"`
	Meshes      Dict[Mesh]       `json:"meshes,omitzero"`
	Cameras     Dict[Camera]     `json:"cameras,omitzero"`
	Skins       Dict[Skin]       `json:"skins,omitzero"`
	Nodes       Dict[Node]       `json:"nodes,omitzero"`
	Scenes      Dict[Scene]      `json:"scenes,omitzero"`
	Animations  Dict[Animation]  `json:"animations,omitzero"`

	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`

	// Unknown holds top-level members without a field above, such as
	// glExtensionsUsed. They are written back after the known members.
	Unknown map[string]json.RawMessage `json:"-"`
}

// Asset holds version metadata.
type Asset struct {
	Version            string                     `json:"version,omitempty"`
	Generator          string                     `json:"generator,omitempty"`
	Copyright          string                     `json:"copyright,omitempty"`
	PremultipliedAlpha bool                       `json:"premultipliedAlpha,omitempty"`
	Extensions         map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras             json.RawMessage            `json:"extras,omitempty"`
}

// Buffer points to binary data, e.g. "duck.bin" or a data URI.
type Buffer struct {
	Name       string                     `json:"name,omitempty"`
	URI        string                     `json:"uri,omitempty"`
	ByteLength int                        `json:"byteLength,omitempty"`
	Type       string                     `json:"type,omitempty"` // "arraybuffer" or "text"
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// BufferView is a byte range of a buffer.
type BufferView struct {
	Name       string                     `json:"name,omitempty"`
	Buffer     string                     `json:"buffer"`
	ByteOffset int                        `json:"byteOffset,omitempty"`
	ByteLength int                        `json:"byteLength,omitempty"`
	Target     int                        `json:"target,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Accessor describes typed elements inside a buffer view.
type Accessor struct {
	Name          string                     `json:"name,omitempty"`
	BufferView    string                     `json:"bufferView"`
	ByteOffset    int                        `json:"byteOffset,omitempty"`
	ByteStride    int                        `json:"byteStride,omitempty"`
	ComponentType int                        `json:"componentType"`
	Count         int                        `json:"count"`
	Type          string                     `json:"type"` // SCALAR, VEC2..VEC4, MAT2..MAT4
	Max           []float64                  `json:"max,omitempty"`
	Min           []float64                  `json:"min,omitempty"`
	Extensions    map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage            `json:"extras,omitempty"`
}

// Shader is GLSL source referenced by URI.
type Shader struct {
	Name       string                     `json:"name,omitempty"`
	URI        string                     `json:"uri,omitempty"`
	Type       int                        `json:"type"` // 35632 fragment, 35633 vertex
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Program links a vertex and a fragment shader.
type Program struct {
	Name           string                     `json:"name,omitempty"`
	Attributes     []string                   `json:"attributes,omitempty"`
	VertexShader   string                     `json:"vertexShader"`
	FragmentShader string                     `json:"fragmentShader"`
	Extensions     map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras         json.RawMessage            `json:"extras,omitempty"`
}

// Technique binds a program to parameters and render states.
type Technique struct {
	Name       string                        `json:"name,omitempty"`
	Program    string                        `json:"program"`
	Parameters map[string]TechniqueParameter `json:"parameters,omitempty"`
	Attributes map[string]string             `json:"attributes,omitempty"` // GLSL attribute -> parameter
	Uniforms   map[string]string             `json:"uniforms,omitempty"`   // GLSL uniform -> parameter
	States     json.RawMessage               `json:"states,omitempty"`
	Extensions map[string]json.RawMessage    `json:"extensions,omitempty"`
	Extras     json.RawMessage               `json:"extras,omitempty"`
}

// TechniqueParameter is an input of a technique.
type TechniqueParameter struct {
	Count      int                        `json:"count,omitempty"`
	Node       string                     `json:"node,omitempty"`
	Type       int                        `json:"type"`
	Semantic   string                     `json:"semantic,omitempty"`
	Value      json.RawMessage            `json:"value,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Image references encoded image data, e.g. "duck.png".
type Image struct {
	Name       string                     `json:"name,omitempty"`
	URI        string                     `json:"uri,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Sampler holds texture filtering and wrapping modes.
type Sampler struct {
	Name       string                     `json:"name,omitempty"`
	MagFilter  int                        `json:"magFilter,omitempty"`
	MinFilter  int                        `json:"minFilter,omitempty"`
	WrapS      int                        `json:"wrapS,omitempty"`
	WrapT      int                        `json:"wrapT,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Texture combines an image source with a sampler.
type Texture struct {
	Name           string                     `json:"name,omitempty"`
	Format         int                        `json:"format,omitempty"`
	InternalFormat int                        `json:"internalFormat,omitempty"`
	Sampler        string                     `json:"sampler"`
	Source         string                     `json:"source"`
	Target         int                        `json:"target,omitempty"`
	Type           int                        `json:"type,omitempty"`
	Extensions     map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras         json.RawMessage            `json:"extras,omitempty"`
}

// Material selects a technique and overrides its parameter values.
// A string value naming a texture is resolved against the textures.
type Material struct {
	Name       string                     `json:"name,omitempty"`
	Technique  string                     `json:"technique,omitempty"`
	Values     map[string]json.RawMessage `json:"values,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Mesh is a set of primitives.
type Mesh struct {
	Name       string                     `json:"name,omitempty"`
	Primitives []Primitive                `json:"primitives,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Primitive is geometry drawn with one material.
type Primitive struct {
	Attributes map[string]string          `json:"attributes,omitempty"` // semantic -> accessor
	Indices    string                     `json:"indices,omitempty"`
	Material   string                     `json:"material"`
	Mode       *int                       `json:"mode,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Camera is either perspective or orthographic.
type Camera struct {
	Name         string                     `json:"name,omitempty"`
	Type         string                     `json:"type"`
	Perspective  *Perspective               `json:"perspective,omitempty"`
	Orthographic *Orthographic              `json:"orthographic,omitempty"`
	Extensions   map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras       json.RawMessage            `json:"extras,omitempty"`
}

// Perspective camera projection.
type Perspective struct {
	AspectRatio float64                    `json:"aspectRatio,omitempty"`
	Yfov        float64                    `json:"yfov"`
	Zfar        float64                    `json:"zfar"`
	Znear       float64                    `json:"znear"`
	Extensions  map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras      json.RawMessage            `json:"extras,omitempty"`
}

// Orthographic camera projection.
type Orthographic struct {
	Xmag       float64                    `json:"xmag"`
	Ymag       float64                    `json:"ymag"`
	Zfar       float64                    `json:"zfar"`
	Znear      float64                    `json:"znear"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Skin binds joints to a mesh. JointNames match Node.JointName, not node ids.
type Skin struct {
	Name                string                     `json:"name,omitempty"`
	BindShapeMatrix     []float64                  `json:"bindShapeMatrix,omitempty"`
	InverseBindMatrices string                     `json:"inverseBindMatrices"`
	JointNames          []string                   `json:"jointNames"`
	Extensions          map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras              json.RawMessage            `json:"extras,omitempty"`
}

// Node is an element of the scene hierarchy.
type Node struct {
	Name        string                     `json:"name,omitempty"`
	Camera      string                     `json:"camera,omitempty"`
	Children    []string                   `json:"children,omitempty"`
	Skeletons   []string                   `json:"skeletons,omitempty"`
	Skin        string                     `json:"skin,omitempty"`
	JointName   string                     `json:"jointName,omitempty"`
	Matrix      []float64                  `json:"matrix,omitempty"`
	Meshes      []string                   `json:"meshes,omitempty"`
	Rotation    []float64                  `json:"rotation,omitempty"`
	Scale       []float64                  `json:"scale,omitempty"`
	Translation []float64                  `json:"translation,omitempty"`
	Extensions  map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras      json.RawMessage            `json:"extras,omitempty"`
}

// Scene lists root nodes.
type Scene struct {
	Name       string                     `json:"name,omitempty"`
	Nodes      []string                   `json:"nodes,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// Animation targets node properties with keyframe samplers.
type Animation struct {
	Name       string                      `json:"name,omitempty"`
	Channels   []AnimationChannel          `json:"channels,omitempty"`
	Parameters map[string]string           `json:"parameters,omitempty"` // parameter -> accessor
	Samplers   map[string]AnimationSampler `json:"samplers,omitempty"`
	Extensions map[string]json.RawMessage  `json:"extensions,omitempty"`
	Extras     json.RawMessage             `json:"extras,omitempty"`
}

// AnimationChannel connects a sampler to a node property.
type AnimationChannel struct {
	Sampler    string                     `json:"sampler"`
	Target     AnimationTarget            `json:"target"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

// AnimationTarget names the node id and the animated path.
type AnimationTarget struct {
	ID   string `json:"id"`
	Path string `json:"path"` // translation, rotation or scale
}

// AnimationSampler maps input parameter to output parameter.
type AnimationSampler struct {
	Input         string                     `json:"input"`
	Interpolation string                     `json:"interpolation,omitempty"`
	Output        string                     `json:"output"`
	Extensions    map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage            `json:"extras,omitempty"`
}
