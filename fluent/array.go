package fluent

import (
	js "github.com/reoring/fluentcheck/jsonschema"
)

// ArrayBuilder accepts arrays whose elements match one schema.
type ArrayBuilder struct {
	node
	elem     Builder
	contains Builder
	opts     js.ArrayOptions
}

// Array returns a builder accepting arrays of elem.
func Array(elem Builder) *ArrayBuilder { return newArray(elem, nil, js.ArrayOptions{}) }

func newArray(elem, contains Builder, o js.ArrayOptions) *ArrayBuilder {
	if contains != nil {
		o.Contains = contains.Schema()
	}
	return &ArrayBuilder{node: node{js.Array(elem.Schema(), o)}, elem: elem, contains: contains, opts: o}
}

// Element returns the element builder.
func (b *ArrayBuilder) Element() Builder { return b.elem }

// MinItems sets the minimum number of elements.
func (b *ArrayBuilder) MinItems(n int) *ArrayBuilder {
	o := b.opts
	o.MinItems = &n
	return newArray(b.elem, b.contains, o)
}

// MaxItems sets the maximum number of elements.
func (b *ArrayBuilder) MaxItems(n int) *ArrayBuilder {
	o := b.opts
	o.MaxItems = &n
	return newArray(b.elem, b.contains, o)
}

// Length fixes the number of elements.
func (b *ArrayBuilder) Length(n int) *ArrayBuilder { return b.MinItems(n).MaxItems(n) }

// NonEmpty requires at least one element.
func (b *ArrayBuilder) NonEmpty() *ArrayBuilder { return b.MinItems(1) }

// Unique requires all elements to be distinct.
func (b *ArrayBuilder) Unique() *ArrayBuilder {
	o := b.opts
	o.UniqueItems = true
	return newArray(b.elem, b.contains, o)
}

// Contains requires between lo and hi elements (hi < 0 means unbounded) to
// match c.
func (b *ArrayBuilder) Contains(c Builder, lo, hi int) *ArrayBuilder {
	o := b.opts
	o.MinContains, o.MaxContains = nil, nil
	if lo != 1 {
		o.MinContains = &lo
	}
	if hi >= 0 {
		o.MaxContains = &hi
	}
	return newArray(b.elem, c, o)
}

// Describe sets the description.
func (b *ArrayBuilder) Describe(d string) *ArrayBuilder {
	o := b.opts
	o.Description = d
	return newArray(b.elem, b.contains, o)
}

// Title sets the title.
func (b *ArrayBuilder) Title(t string) *ArrayBuilder {
	o := b.opts
	o.Title = t
	return newArray(b.elem, b.contains, o)
}

// TupleBuilder accepts fixed-length arrays matched positionally.
type TupleBuilder struct {
	node
	items []Builder
	meta  js.Meta
}

// Tuple returns a builder accepting arrays of exactly len(items) elements.
func Tuple(items ...Builder) *TupleBuilder { return newTuple(items, js.Meta{}) }

func newTuple(items []Builder, m js.Meta) *TupleBuilder {
	return &TupleBuilder{node{js.Tuple(schemas(items), m)}, items, m}
}

// Items returns the positional builders.
func (b *TupleBuilder) Items() []Builder { return append([]Builder(nil), b.items...) }

// Describe sets the description.
func (b *TupleBuilder) Describe(d string) *TupleBuilder {
	m := b.meta
	m.Description = d
	return newTuple(b.items, m)
}
