package fluent

import (
	js "github.com/reoring/fluentcheck/jsonschema"
)

// LiteralBuilder accepts exactly one value.
type LiteralBuilder struct {
	node
	value any
	meta  js.Meta
}

// Literal returns a builder accepting exactly v (a string, bool or number).
func Literal(v any) *LiteralBuilder { return newLiteral(v, js.Meta{}) }

func newLiteral(v any, m js.Meta) *LiteralBuilder {
	return &LiteralBuilder{node{js.Literal(v, m)}, v, m}
}

// Value returns the literal value.
func (b *LiteralBuilder) Value() any { return b.value }

// Describe sets the description.
func (b *LiteralBuilder) Describe(d string) *LiteralBuilder {
	m := b.meta
	m.Description = d
	return newLiteral(b.value, m)
}

// EnumBuilder accepts any of a fixed set of values.
type EnumBuilder struct {
	node
	values []any
	meta   js.Meta
}

// Enum returns a builder accepting any of values.
func Enum[V comparable](values ...V) *EnumBuilder {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return newEnum(vs, js.Meta{})
}

func newEnum(vs []any, m js.Meta) *EnumBuilder { return &EnumBuilder{node{js.Enum(vs, m)}, vs, m} }

// Values returns the accepted values.
func (b *EnumBuilder) Values() []any { return append([]any(nil), b.values...) }

// Extract narrows the enum to the given values.
func (b *EnumBuilder) Extract(vals ...any) *EnumBuilder {
	keep := make(map[any]struct{}, len(vals))
	for _, v := range vals {
		keep[v] = struct{}{}
	}
	out := make([]any, 0, len(vals))
	for _, v := range b.values {
		if _, ok := keep[v]; ok {
			out = append(out, v)
		}
	}
	return newEnum(out, b.meta)
}

// Exclude removes the given values from the enum.
func (b *EnumBuilder) Exclude(vals ...any) *EnumBuilder {
	drop := make(map[any]struct{}, len(vals))
	for _, v := range vals {
		drop[v] = struct{}{}
	}
	out := make([]any, 0, len(b.values))
	for _, v := range b.values {
		if _, ok := drop[v]; !ok {
			out = append(out, v)
		}
	}
	return newEnum(out, b.meta)
}

// Describe sets the description.
func (b *EnumBuilder) Describe(d string) *EnumBuilder {
	m := b.meta
	m.Description = d
	return newEnum(b.values, m)
}
