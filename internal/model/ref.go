package model

import (
	"fmt"

	"go.uber.org/zap"

	"gltf-toolkit/internal/refindex"
)

// Status tells an unset reference apart from a dangling one.
type Status uint8

const (
	// Unset means no identifier was given. This is a valid "no reference".
	Unset Status = iota
	// Resolved means the identifier named an existing entity.
	Resolved
	// Dangling means the identifier is not declared in its category.
	Dangling
)

func (s Status) String() string {
	switch s {
	case Unset:
		return "unset"
	case Resolved:
		return "resolved"
	case Dangling:
		return "dangling"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Ref is the result of an identifier lookup.
type Ref[T any] struct {
	value  T
	id     string
	status Status
}

// Get returns the entity and true if the reference resolved.
func (r Ref[T]) Get() (T, bool) {
	return r.value, r.status == Resolved
}

// Value returns the entity, or the zero value if the reference did not resolve.
func (r Ref[T]) Value() T {
	return r.value
}

// Status returns how the lookup ended.
func (r Ref[T]) Status() Status {
	return r.status
}

// ID returns the identifier that was looked up.
func (r Ref[T]) ID() string {
	return r.id
}

// Dangling reports whether the identifier was given but not found.
func (r Ref[T]) Dangling() bool {
	return r.status == Dangling
}

// DanglingRef records an identifier field that named no entity.
type DanglingRef struct {
	Category refindex.Category // category the id was looked up in
	ID       string
	Referrer string // e.g. "bufferViews/view_0"
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s: no %s %q", d.Referrer, d.Category, d.ID)
}

// lookup translates id to an index, then to the entity at that index.
// An index outside items means the index and the collection disagree,
// which is a bug, not bad input.
func lookup[T any](idx *refindex.Index, c refindex.Category, id string, items []T) Ref[T] {
	if id == "" {
		return Ref[T]{}
	}
	i, ok := idx.Lookup(c, id)
	if !ok {
		Logger().Error("no index found",
			zap.Stringer("category", c),
			zap.String("id", id))
		return Ref[T]{id: id, status: Dangling}
	}
	if i < 0 || i >= len(items) {
		panic(fmt.Sprintf("model: %s index %d for %q out of range [0,%d)", c, i, id, len(items)))
	}
	return Ref[T]{value: items[i], id: id, status: Resolved}
}
