// Package model resolves a glTF 1.0 document into entities addressed by
// dense index, and looks entities up by their document identifiers.
package model

import (
	"gltf-toolkit/internal/gltf"
	"gltf-toolkit/internal/refindex"
)

// Model is a resolved asset. Slices are in index order; entity i of a
// category has the i-th identifier of that category in the document.
type Model struct {
	doc   *gltf.Document
	index *refindex.Index

	buffers     []*Buffer
	bufferViews []*BufferView
	accessors   []*Accessor
	shaders     []*Shader
	programs    []*Program
	techniques  []*Technique
	images      []*Image
	samplers    []*Sampler
	textures    []*Texture
	materials   []*Material
	meshes      []*Mesh
	cameras     []*Camera
	skins       []*Skin
	nodes       []*Node
	scenes      []*Scene
	animations  []*Animation

	scene    *Scene
	dangling []DanglingRef
}

// Document returns the document the model was resolved from. It must not be modified.
func (m *Model) Document() *gltf.Document { return m.doc }

// Index returns the reference index used for identifier lookups.
func (m *Model) Index() *refindex.Index { return m.index }

// Dangling returns the dangling references found during Resolve.
func (m *Model) Dangling() []DanglingRef {
	out := make([]DanglingRef, len(m.dangling))
	copy(out, m.dangling)
	return out
}

// Scene returns the default scene, or nil.
func (m *Model) Scene() *Scene { return m.scene }

func (m *Model) Buffers() []*Buffer         { return m.buffers }
func (m *Model) BufferViews() []*BufferView { return m.bufferViews }
func (m *Model) Accessors() []*Accessor     { return m.accessors }
func (m *Model) Shaders() []*Shader         { return m.shaders }
func (m *Model) Programs() []*Program       { return m.programs }
func (m *Model) Techniques() []*Technique   { return m.techniques }
func (m *Model) Images() []*Image           { return m.images }
func (m *Model) Samplers() []*Sampler       { return m.samplers }
func (m *Model) Textures() []*Texture       { return m.textures }
func (m *Model) Materials() []*Material     { return m.materials }
func (m *Model) Meshes() []*Mesh            { return m.meshes }
func (m *Model) Cameras() []*Camera         { return m.cameras }
func (m *Model) Skins() []*Skin             { return m.skins }
func (m *Model) Nodes() []*Node             { return m.nodes }
func (m *Model) Scenes() []*Scene           { return m.scenes }
func (m *Model) Animations() []*Animation   { return m.animations }

// BufferByID returns the buffer with the given id.
// An empty id is Unset. An unknown id is Dangling and logs an error.
func (m *Model) BufferByID(id string) Ref[*Buffer] {
	return lookup(m.index, refindex.Buffers, id, m.buffers)
}

// BufferViewByID returns the buffer view with the given id; see BufferByID.
func (m *Model) BufferViewByID(id string) Ref[*BufferView] {
	return lookup(m.index, refindex.BufferViews, id, m.bufferViews)
}

// AccessorByID returns the accessor with the given id; see BufferByID.
func (m *Model) AccessorByID(id string) Ref[*Accessor] {
	return lookup(m.index, refindex.Accessors, id, m.accessors)
}

// ShaderByID returns the shader with the given id; see BufferByID.
func (m *Model) ShaderByID(id string) Ref[*Shader] {
	return lookup(m.index, refindex.Shaders, id, m.shaders)
}

// ProgramByID returns the program with the given id; see BufferByID.
func (m *Model) ProgramByID(id string) Ref[*Program] {
	return lookup(m.index, refindex.Programs, id, m.programs)
}

// TechniqueByID returns the technique with the given id; see BufferByID.
func (m *Model) TechniqueByID(id string) Ref[*Technique] {
	return lookup(m.index, refindex.Techniques, id, m.techniques)
}

// ImageByID returns the image with the given id; see BufferByID.
func (m *Model) ImageByID(id string) Ref[*Image] {
	return lookup(m.index, refindex.Images, id, m.images)
}

// SamplerByID returns the sampler with the given id; see BufferByID.
func (m *Model) SamplerByID(id string) Ref[*Sampler] {
	return lookup(m.index, refindex.Samplers, id, m.samplers)
}

// TextureByID returns the texture with the given id; see BufferByID.
func (m *Model) TextureByID(id string) Ref[*Texture] {
	return lookup(m.index, refindex.Textures, id, m.textures)
}

// MaterialByID returns the material with the given id; see BufferByID.
func (m *Model) MaterialByID(id string) Ref[*Material] {
	return lookup(m.index, refindex.Materials, id, m.materials)
}

// MeshByID returns the mesh with the given id; see BufferByID.
func (m *Model) MeshByID(id string) Ref[*Mesh] {
	return lookup(m.index, refindex.Meshes, id, m.meshes)
}

// CameraByID returns the camera with the given id; see BufferByID.
func (m *Model) CameraByID(id string) Ref[*Camera] {
	return lookup(m.index, refindex.Cameras, id, m.cameras)
}

// SkinByID returns the skin with the given id; see BufferByID.
func (m *Model) SkinByID(id string) Ref[*Skin] {
	return lookup(m.index, refindex.Skins, id, m.skins)
}

// NodeByID returns the node with the given id; see BufferByID.
func (m *Model) NodeByID(id string) Ref[*Node] {
	return lookup(m.index, refindex.Nodes, id, m.nodes)
}

// SceneByID returns the scene with the given id; see BufferByID.
func (m *Model) SceneByID(id string) Ref[*Scene] {
	return lookup(m.index, refindex.Scenes, id, m.scenes)
}

// AnimationByID returns the animation with the given id; see BufferByID.
func (m *Model) AnimationByID(id string) Ref[*Animation] {
	return lookup(m.index, refindex.Animations, id, m.animations)
}
