package fluent

import (
	"sort"

	js "github.com/reoring/fluentcheck/jsonschema"
)

// UnionBuilder accepts values matching any of its variants.
type UnionBuilder struct {
	node
	variants []Builder
	meta     js.Meta
}

// Union returns a builder accepting values that match any of variants.
func Union(variants ...Builder) *UnionBuilder { return newUnion(variants, js.Meta{}) }

func newUnion(variants []Builder, m js.Meta) *UnionBuilder {
	return &UnionBuilder{node{js.Union(schemas(variants), m)}, variants, m}
}

// Nullable returns a union of b and Null.
func Nullable(b Builder) *UnionBuilder { return Union(b, Null()) }

// Or adds a variant.
func (b *UnionBuilder) Or(v Builder) *UnionBuilder {
	return newUnion(append(b.Variants(), v), b.meta)
}

// Variants returns the variant builders.
func (b *UnionBuilder) Variants() []Builder { return append([]Builder(nil), b.variants...) }

// Describe sets the description.
func (b *UnionBuilder) Describe(d string) *UnionBuilder {
	m := b.meta
	m.Description = d
	return newUnion(b.variants, m)
}

// KeyOf returns a union of the property names of o as string literals,
// sorted.
func KeyOf(o *ObjectBuilder) *UnionBuilder {
	keys := o.Keys()
	sort.Strings(keys)
	lits := make([]Builder, len(keys))
	for i, k := range keys {
		lits[i] = Literal(k)
	}
	return Union(lits...)
}

// IntersectBuilder accepts values matching all of its parts.
type IntersectBuilder struct {
	node
	parts []Builder
	meta  js.Meta
}

// Intersect returns a builder accepting values that match all of parts.
func Intersect(parts ...Builder) *IntersectBuilder { return newIntersect(parts, js.Meta{}) }

func newIntersect(parts []Builder, m js.Meta) *IntersectBuilder {
	return &IntersectBuilder{node{js.Intersect(schemas(parts), m)}, parts, m}
}

// And adds a part.
func (b *IntersectBuilder) And(p Builder) *IntersectBuilder {
	return newIntersect(append(b.Parts(), p), b.meta)
}

// Parts returns the intersected builders.
func (b *IntersectBuilder) Parts() []Builder { return append([]Builder(nil), b.parts...) }

// Describe sets the description.
func (b *IntersectBuilder) Describe(d string) *IntersectBuilder {
	m := b.meta
	m.Description = d
	return newIntersect(b.parts, m)
}

// NotBuilder accepts values that do not match its inner schema.
type NotBuilder struct {
	node
	inner Builder
	meta  js.Meta
}

// Not returns a builder accepting values that do not match inner.
func Not(inner Builder) *NotBuilder { return newNot(inner, js.Meta{}) }

func newNot(inner Builder, m js.Meta) *NotBuilder {
	return &NotBuilder{node{js.Not(inner.Schema(), m)}, inner, m}
}

// Describe sets the description.
func (b *NotBuilder) Describe(d string) *NotBuilder {
	m := b.meta
	m.Description = d
	return newNot(b.inner, m)
}
