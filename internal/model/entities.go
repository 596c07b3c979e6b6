package model

import (
	"encoding/json"
	"fmt"
	"image"

	"gltf-toolkit/internal/gltf"
	"gltf-toolkit/internal/mathutil"
	"gltf-toolkit/internal/mimetype"
)

// Accessor component types.
const (
	Byte          = 5120
	UnsignedByte  = 5121
	Short         = 5122
	UnsignedShort = 5123
	UnsignedInt   = 5125
	Float         = 5126
)

// Sampler2D is the technique parameter type of texture values.
const Sampler2D = 35678

// Buffer holds the realized bytes of a buffer.
type Buffer struct {
	Index int
	ID    string
	Name  string
	URI   string
	data  []byte
}

// Data returns the full payload. Its length is the declared byteLength.
func (b *Buffer) Data() []byte { return b.data }

// ByteLength returns len(Data()).
func (b *Buffer) ByteLength() int { return len(b.data) }

// BufferView is a byte range of a buffer.
type BufferView struct {
	Index      int
	ID         string
	Name       string
	Buffer     *Buffer // nil if the buffer reference dangles
	ByteOffset int
	ByteLength int
	Target     int
}

// Data returns the bytes covered by the view.
func (v *BufferView) Data() ([]byte, error) {
	if v.Buffer == nil {
		return nil, fmt.Errorf("model: buffer view %q has no buffer", v.ID)
	}
	end := v.ByteOffset + v.ByteLength
	if v.ByteOffset < 0 || end > len(v.Buffer.data) {
		return nil, fmt.Errorf("model: buffer view %q range [%d,%d) exceeds buffer %q (%d bytes)",
			v.ID, v.ByteOffset, end, v.Buffer.ID, len(v.Buffer.data))
	}
	return v.Buffer.data[v.ByteOffset:end:end], nil
}

// Accessor is a typed view of elements in a buffer view.
type Accessor struct {
	Index         int
	ID            string
	Name          string
	BufferView    *BufferView
	ByteOffset    int
	ByteStride    int
	ComponentType int
	Count         int
	Type          string
	Min, Max      []float64
}

// ComponentSize returns the byte size of one component, or 0 if unknown.
func (a *Accessor) ComponentSize() int {
	switch a.ComponentType {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case UnsignedInt, Float:
		return 4
	}
	return 0
}

// NumComponents returns the components per element, or 0 if unknown.
func (a *Accessor) NumComponents() int {
	switch a.Type {
	case "SCALAR":
		return 1
	case "VEC2":
		return 2
	case "VEC3":
		return 3
	case "VEC4", "MAT2":
		return 4
	case "MAT3":
		return 9
	case "MAT4":
		return 16
	}
	return 0
}

// ElementSize returns the byte size of one element.
func (a *Accessor) ElementSize() int {
	return a.ComponentSize() * a.NumComponents()
}

// Stride returns the distance between element starts. Zero stride means tightly packed.
func (a *Accessor) Stride() int {
	if a.ByteStride > 0 {
		return a.ByteStride
	}
	return a.ElementSize()
}

// Data returns the bytes from the first to the end of the last element.
func (a *Accessor) Data() ([]byte, error) {
	if a.BufferView == nil {
		return nil, fmt.Errorf("model: accessor %q has no buffer view", a.ID)
	}
	view, err := a.BufferView.Data()
	if err != nil {
		return nil, err
	}
	if a.Count == 0 {
		return view[:0], nil
	}
	end := a.ByteOffset + a.Stride()*(a.Count-1) + a.ElementSize()
	if a.ByteOffset < 0 || end > len(view) {
		return nil, fmt.Errorf("model: accessor %q needs %d bytes, buffer view %q has %d",
			a.ID, end, a.BufferView.ID, len(view))
	}
	return view[a.ByteOffset:end:end], nil
}

// Shader holds GLSL source.
type Shader struct {
	Index  int
	ID     string
	Name   string
	URI    string
	Type   int
	source []byte
}

// Source returns the shader source bytes.
func (s *Shader) Source() []byte { return s.source }

// Program links two shaders.
type Program struct {
	Index          int
	ID             string
	Name           string
	Attributes     []string
	VertexShader   *Shader
	FragmentShader *Shader
}

// Technique binds a program to parameters.
type Technique struct {
	Index      int
	ID         string
	Name       string
	Program    *Program
	Parameters map[string]gltf.TechniqueParameter
	Attributes map[string]string
	Uniforms   map[string]string
}

// Image holds an encoded image payload.
type Image struct {
	Index int
	ID    string
	Name  string
	URI   string
	data  []byte
}

// Data returns the encoded image bytes, nil for an image without a URI.
func (img *Image) Data() []byte { return img.data }

// MimeType infers the type from the URI extension, then the payload signature.
// It returns "" if neither identifies it.
func (img *Image) MimeType() string {
	return mimetype.Guess(img.URI, img.data)
}

// Config decodes the image header.
func (img *Image) Config() (image.Config, error) {
	mt := img.MimeType()
	if mt == "" {
		return image.Config{}, fmt.Errorf("model: image %q: unknown type", img.ID)
	}
	return mimetype.DecodeConfig(mt, img.data)
}

// Sampler holds filtering and wrapping modes.
type Sampler struct {
	Index     int
	ID        string
	Name      string
	MagFilter int
	MinFilter int
	WrapS     int
	WrapT     int
}

// Texture combines an image and a sampler.
type Texture struct {
	Index          int
	ID             string
	Name           string
	Image          *Image
	Sampler        *Sampler
	Format         int
	InternalFormat int
	Target         int
	Type           int
}

// Material selects a technique. Values of SAMPLER_2D parameters are also
// available resolved in Textures.
type Material struct {
	Index     int
	ID        string
	Name      string
	Technique *Technique
	Values    map[string]json.RawMessage
	Textures  map[string]*Texture
}

// Mesh is a set of primitives.
type Mesh struct {
	Index      int
	ID         string
	Name       string
	Primitives []Primitive
}

// Primitive is geometry drawn with one material.
type Primitive struct {
	Attributes map[string]*Accessor
	Indices    *Accessor
	Material   *Material
	Mode       int
}

// Camera holds a projection.
type Camera struct {
	Index        int
	ID           string
	Name         string
	Type         string
	Perspective  *gltf.Perspective
	Orthographic *gltf.Orthographic
}

// Skin binds joints to a mesh.
type Skin struct {
	Index               int
	ID                  string
	Name                string
	BindShapeMatrix     []float64
	InverseBindMatrices *Accessor
	JointNames          []string
	Joints              []*Node // nodes whose JointName is listed, in JointNames order
}

// Node is an element of the scene hierarchy. Dangling ids in list fields
// are left out of the corresponding slices.
type Node struct {
	Index       int
	ID          string
	Name        string
	Parent      *Node
	Children    []*Node
	Camera      *Camera
	Meshes      []*Mesh
	Skin        *Skin
	Skeletons   []*Node
	JointName   string
	Matrix      []float64
	Rotation    []float64
	Scale       []float64
	Translation []float64
}

// LocalMatrix returns the transform relative to the parent node. An explicit
// matrix takes precedence over translation, rotation and scale.
func (n *Node) LocalMatrix() mathutil.Mat4 {
	if m, ok := mathutil.FromColumnMajor(n.Matrix); ok {
		return m
	}
	return mathutil.Compose(
		mathutil.Vec3From(n.Translation, mathutil.Vec3{}),
		mathutil.QuatFrom(n.Rotation),
		mathutil.Vec3From(n.Scale, mathutil.Vec3{1, 1, 1}),
	)
}

// WorldMatrix composes LocalMatrix with every ancestor's. A parent cycle
// stops at the first repeated node.
func (n *Node) WorldMatrix() mathutil.Mat4 {
	m := n.LocalMatrix()
	seen := map[*Node]bool{n: true}
	for p := n.Parent; p != nil && !seen[p]; p = p.Parent {
		seen[p] = true
		m = mathutil.Mat4Mul(p.LocalMatrix(), m)
	}
	return m
}

// Scene lists root nodes.
type Scene struct {
	Index int
	ID    string
	Name  string
	Nodes []*Node
}

// Animation drives node properties.
type Animation struct {
	Index      int
	ID         string
	Name       string
	Channels   []Channel
	Samplers   map[string]AnimationSampler
	Parameters map[string]*Accessor
}

// Channel targets one node property.
type Channel struct {
	Sampler string
	Node    *Node
	Path    string
}

// AnimationSampler pairs key times with values.
type AnimationSampler struct {
	Input         *Accessor
	Output        *Accessor
	Interpolation string
}
