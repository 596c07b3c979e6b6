package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"gltf-toolkit/internal/datauri"
	"gltf-toolkit/internal/gltf"
	"gltf-toolkit/internal/refindex"
)

var (
	// ErrNoLoader is returned when an external URI must be read but no Loader was given.
	ErrNoLoader = errors.New("no loader for external uri")
	// ErrShortPayload is returned when a buffer payload is shorter than its byteLength.
	ErrShortPayload = errors.New("payload shorter than byteLength")
)

// Loader fetches the payload behind an external (non-data) URI.
type Loader interface {
	Load(uri string) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(uri string) ([]byte, error)

// Load calls f(uri).
func (f LoaderFunc) Load(uri string) ([]byte, error) { return f(uri) }

// Resolve builds the model for doc. Categories are resolved in refindex
// order so every reference points at an entity that already exists.
// Dangling references are logged, recorded in Model.Dangling and left nil;
// they do not fail resolution. If idx is nil it is built from doc.
func Resolve(doc *gltf.Document, idx *refindex.Index, loader Loader) (*Model, error) {
	if idx == nil {
		idx = refindex.Build(doc)
	}
	r := &resolver{m: &Model{doc: doc, index: idx}, loader: loader}

	steps := []func() error{
		r.buffers,
		r.bufferViews,
		r.accessors,
		r.shaders,
		r.programs,
		r.techniques,
		r.images,
		r.samplers,
		r.textures,
		r.materials,
		r.meshes,
		r.cameras,
		r.skins,
		r.nodes,
		r.scenes,
		r.animations,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return r.m, nil
}

type resolver struct {
	m      *Model
	loader Loader
}

// ref resolves one identifier field of referrer.
func ref[T any](r *resolver, c refindex.Category, id string, items []T, referrer string) T {
	got := lookup(r.m.index, c, id, items)
	if got.Dangling() {
		r.m.dangling = append(r.m.dangling, DanglingRef{Category: c, ID: id, Referrer: referrer})
	}
	return got.Value()
}

// refs resolves a list of identifiers, dropping dangling ones.
func refs[T any](r *resolver, c refindex.Category, ids []string, items []T, referrer string) []T {
	if len(ids) == 0 {
		return nil
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		got := lookup(r.m.index, c, id, items)
		if got.Dangling() {
			r.m.dangling = append(r.m.dangling, DanglingRef{Category: c, ID: id, Referrer: referrer})
			continue
		}
		out = append(out, got.Value())
	}
	return out
}

func referrer(c refindex.Category, id string) string {
	return c.String() + "/" + id
}

func (r *resolver) payload(uri string) ([]byte, error) {
	if uri == "" {
		return nil, nil
	}
	if datauri.Is(uri) {
		d, err := datauri.Parse(uri)
		if err != nil {
			return nil, err
		}
		return d.Data, nil
	}
	if r.loader == nil {
		return nil, fmt.Errorf("%w %q", ErrNoLoader, uri)
	}
	return r.loader.Load(uri)
}

func (r *resolver) buffers() error {
	for id, b := range r.m.doc.Buffers.All() {
		data, err := r.payload(b.URI)
		if err != nil {
			return fmt.Errorf("model: buffer %q: %w", id, err)
		}
		// A buffer without a URI has no payload to check; it is left as declared.
		if b.URI != "" && b.ByteLength > 0 {
			if len(data) < b.ByteLength {
				return fmt.Errorf("model: buffer %q: %w: %d < %d", id, ErrShortPayload, len(data), b.ByteLength)
			}
			data = data[:b.ByteLength:b.ByteLength]
		}
		r.m.buffers = append(r.m.buffers, &Buffer{
			Index: len(r.m.buffers),
			ID:    id,
			Name:  b.Name,
			URI:   b.URI,
			data:  data,
		})
	}
	return nil
}

func (r *resolver) bufferViews() error {
	for id, v := range r.m.doc.BufferViews.All() {
		r.m.bufferViews = append(r.m.bufferViews, &BufferView{
			Index:      len(r.m.bufferViews),
			ID:         id,
			Name:       v.Name,
			Buffer:     ref(r, refindex.Buffers, v.Buffer, r.m.buffers, referrer(refindex.BufferViews, id)),
			ByteOffset: v.ByteOffset,
			ByteLength: v.ByteLength,
			Target:     v.Target,
		})
	}
	return nil
}

func (r *resolver) accessors() error {
	for id, a := range r.m.doc.Accessors.All() {
		r.m.accessors = append(r.m.accessors, &Accessor{
			Index:         len(r.m.accessors),
			ID:            id,
			Name:          a.Name,
			BufferView:    ref(r, refindex.BufferViews, a.BufferView, r.m.bufferViews, referrer(refindex.Accessors, id)),
			ByteOffset:    a.ByteOffset,
			ByteStride:    a.ByteStride,
			ComponentType: a.ComponentType,
			Count:         a.Count,
			Type:          a.Type,
			Min:           a.Min,
			Max:           a.Max,
		})
	}
	return nil
}

func (r *resolver) shaders() error {
	for id, s := range r.m.doc.Shaders.All() {
		src, err := r.payload(s.URI)
		if err != nil {
			return fmt.Errorf("model: shader %q: %w", id, err)
		}
		r.m.shaders = append(r.m.shaders, &Shader{
			Index:  len(r.m.shaders),
			ID:     id,
			Name:   s.Name,
			URI:    s.URI,
			Type:   s.Type,
			source: src,
		})
	}
	return nil
}

func (r *resolver) programs() error {
	for id, p := range r.m.doc.Programs.All() {
		from := referrer(refindex.Programs, id)
		r.m.programs = append(r.m.programs, &Program{
			Index:          len(r.m.programs),
			ID:             id,
			Name:           p.Name,
			Attributes:     p.Attributes,
			VertexShader:   ref(r, refindex.Shaders, p.VertexShader, r.m.shaders, from),
			FragmentShader: ref(r, refindex.Shaders, p.FragmentShader, r.m.shaders, from),
		})
	}
	return nil
}

func (r *resolver) techniques() error {
	for id, t := range r.m.doc.Techniques.All() {
		r.m.techniques = append(r.m.techniques, &Technique{
			Index:      len(r.m.techniques),
			ID:         id,
			Name:       t.Name,
			Program:    ref(r, refindex.Programs, t.Program, r.m.programs, referrer(refindex.Techniques, id)),
			Parameters: t.Parameters,
			Attributes: t.Attributes,
			Uniforms:   t.Uniforms,
		})
	}
	return nil
}

func (r *resolver) images() error {
	for id, img := range r.m.doc.Images.All() {
		data, err := r.payload(img.URI)
		if err != nil {
			return fmt.Errorf("model: image %q: %w", id, err)
		}
		r.m.images = append(r.m.images, &Image{
			Index: len(r.m.images),
			ID:    id,
			Name:  img.Name,
			URI:   img.URI,
			data:  data,
		})
	}
	return nil
}

func (r *resolver) samplers() error {
	for id, s := range r.m.doc.Samplers.All() {
		r.m.samplers = append(r.m.samplers, &Sampler{
			Index:     len(r.m.samplers),
			ID:        id,
			Name:      s.Name,
			MagFilter: s.MagFilter,
			MinFilter: s.MinFilter,
			WrapS:     s.WrapS,
			WrapT:     s.WrapT,
		})
	}
	return nil
}

func (r *resolver) textures() error {
	for id, t := range r.m.doc.Textures.All() {
		from := referrer(refindex.Textures, id)
		r.m.textures = append(r.m.textures, &Texture{
			Index:          len(r.m.textures),
			ID:             id,
			Name:           t.Name,
			Image:          ref(r, refindex.Images, t.Source, r.m.images, from),
			Sampler:        ref(r, refindex.Samplers, t.Sampler, r.m.samplers, from),
			Format:         t.Format,
			InternalFormat: t.InternalFormat,
			Target:         t.Target,
			Type:           t.Type,
		})
	}
	return nil
}

func (r *resolver) materials() error {
	for id, mat := range r.m.doc.Materials.All() {
		from := referrer(refindex.Materials, id)
		tech := ref(r, refindex.Techniques, mat.Technique, r.m.techniques, from)

		var textures map[string]*Texture
		if tech != nil {
			for _, name := range slices.Sorted(maps.Keys(mat.Values)) {
				if tech.Parameters[name].Type != Sampler2D {
					continue
				}
				var texID string
				if err := json.Unmarshal(mat.Values[name], &texID); err != nil {
					continue
				}
				if tex := ref(r, refindex.Textures, texID, r.m.textures, from); tex != nil {
					if textures == nil {
						textures = make(map[string]*Texture)
					}
					textures[name] = tex
				}
			}
		}

		r.m.materials = append(r.m.materials, &Material{
			Index:     len(r.m.materials),
			ID:        id,
			Name:      mat.Name,
			Technique: tech,
			Values:    mat.Values,
			Textures:  textures,
		})
	}
	return nil
}

func (r *resolver) meshes() error {
	for id, mesh := range r.m.doc.Meshes.All() {
		from := referrer(refindex.Meshes, id)
		prims := make([]Primitive, 0, len(mesh.Primitives))
		for _, p := range mesh.Primitives {
			attrs := make(map[string]*Accessor, len(p.Attributes))
			for _, sem := range slices.Sorted(maps.Keys(p.Attributes)) {
				if acc := ref(r, refindex.Accessors, p.Attributes[sem], r.m.accessors, from); acc != nil {
					attrs[sem] = acc
				}
			}
			mode := 4 // TRIANGLES
			if p.Mode != nil {
				mode = *p.Mode
			}
			prims = append(prims, Primitive{
				Attributes: attrs,
				Indices:    ref(r, refindex.Accessors, p.Indices, r.m.accessors, from),
				Material:   ref(r, refindex.Materials, p.Material, r.m.materials, from),
				Mode:       mode,
			})
		}
		r.m.meshes = append(r.m.meshes, &Mesh{
			Index:      len(r.m.meshes),
			ID:         id,
			Name:       mesh.Name,
			Primitives: prims,
		})
	}
	return nil
}

func (r *resolver) cameras() error {
	for id, c := range r.m.doc.Cameras.All() {
		r.m.cameras = append(r.m.cameras, &Camera{
			Index:        len(r.m.cameras),
			ID:           id,
			Name:         c.Name,
			Type:         c.Type,
			Perspective:  c.Perspective,
			Orthographic: c.Orthographic,
		})
	}
	return nil
}

// skins are created before nodes; their Joints are filled in by nodes.
func (r *resolver) skins() error {
	for id, s := range r.m.doc.Skins.All() {
		r.m.skins = append(r.m.skins, &Skin{
			Index:               len(r.m.skins),
			ID:                  id,
			Name:                s.Name,
			BindShapeMatrix:     s.BindShapeMatrix,
			InverseBindMatrices: ref(r, refindex.Accessors, s.InverseBindMatrices, r.m.accessors, referrer(refindex.Skins, id)),
			JointNames:          s.JointNames,
		})
	}
	return nil
}

// nodes allocates every node first so children may be declared after their parent.
func (r *resolver) nodes() error {
	doc := r.m.doc
	r.m.nodes = make([]*Node, 0, doc.Nodes.Len())
	for id, n := range doc.Nodes.All() {
		r.m.nodes = append(r.m.nodes, &Node{
			Index:       len(r.m.nodes),
			ID:          id,
			Name:        n.Name,
			JointName:   n.JointName,
			Matrix:      n.Matrix,
			Rotation:    n.Rotation,
			Scale:       n.Scale,
			Translation: n.Translation,
		})
	}

	i := 0
	for id, n := range doc.Nodes.All() {
		node := r.m.nodes[i]
		i++
		from := referrer(refindex.Nodes, id)
		node.Camera = ref(r, refindex.Cameras, n.Camera, r.m.cameras, from)
		node.Meshes = refs(r, refindex.Meshes, n.Meshes, r.m.meshes, from)
		node.Skin = ref(r, refindex.Skins, n.Skin, r.m.skins, from)
		node.Skeletons = refs(r, refindex.Nodes, n.Skeletons, r.m.nodes, from)
		node.Children = refs(r, refindex.Nodes, n.Children, r.m.nodes, from)
		for _, child := range node.Children {
			if child.Parent != nil && child.Parent != node {
				Logger().Warn("node has several parents",
					zap.String("node", child.ID),
					zap.String("parent", child.Parent.ID),
					zap.String("other", node.ID))
				continue
			}
			child.Parent = node
		}
	}

	joints := make(map[string]*Node)
	for _, node := range r.m.nodes {
		if node.JointName != "" {
			if _, seen := joints[node.JointName]; !seen {
				joints[node.JointName] = node
			}
		}
	}
	for _, skin := range r.m.skins {
		for _, name := range skin.JointNames {
			node, ok := joints[name]
			if !ok {
				Logger().Warn("no node with joint name",
					zap.String("skin", skin.ID),
					zap.String("jointName", name))
				continue
			}
			skin.Joints = append(skin.Joints, node)
		}
	}
	return nil
}

func (r *resolver) scenes() error {
	for id, s := range r.m.doc.Scenes.All() {
		r.m.scenes = append(r.m.scenes, &Scene{
			Index: len(r.m.scenes),
			ID:    id,
			Name:  s.Name,
			Nodes: refs(r, refindex.Nodes, s.Nodes, r.m.nodes, referrer(refindex.Scenes, id)),
		})
	}
	r.m.scene = ref(r, refindex.Scenes, r.m.doc.Scene, r.m.scenes, "scene")
	return nil
}

func (r *resolver) animations() error {
	for id, a := range r.m.doc.Animations.All() {
		from := referrer(refindex.Animations, id)

		params := make(map[string]*Accessor, len(a.Parameters))
		for _, name := range slices.Sorted(maps.Keys(a.Parameters)) {
			if acc := ref(r, refindex.Accessors, a.Parameters[name], r.m.accessors, from); acc != nil {
				params[name] = acc
			}
		}

		samplers := make(map[string]AnimationSampler, len(a.Samplers))
		for name, s := range a.Samplers {
			samplers[name] = AnimationSampler{
				Input:         params[s.Input],
				Output:        params[s.Output],
				Interpolation: s.Interpolation,
			}
		}

		channels := make([]Channel, 0, len(a.Channels))
		for _, ch := range a.Channels {
			channels = append(channels, Channel{
				Sampler: ch.Sampler,
				Node:    ref(r, refindex.Nodes, ch.Target.ID, r.m.nodes, from),
				Path:    ch.Target.Path,
			})
		}

		r.m.animations = append(r.m.animations, &Animation{
			Index:      len(r.m.animations),
			ID:         id,
			Name:       a.Name,
			Channels:   channels,
			Samplers:   samplers,
			Parameters: params,
		})
	}
	return nil
}
