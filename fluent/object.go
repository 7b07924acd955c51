package fluent

import (
	"slices"

	js "github.com/reoring/fluentcheck/jsonschema"
)

type field struct {
	name string
	b    Builder
}

// ObjectBuilder accepts objects with named properties. It keeps its fields in
// declaration order; structural operations return new builders.
type ObjectBuilder struct {
	node
	fields   []field
	catchall Builder
	opts     js.ObjectOptions
}

// Object returns a builder for an object without properties. Unknown keys are
// allowed until Strict or Catchall is called.
func Object() *ObjectBuilder { return newObject(nil, nil, js.ObjectOptions{}) }

func newObject(fields []field, catchall Builder, o js.ObjectOptions) *ObjectBuilder {
	props := make(js.Properties, len(fields))
	for _, f := range fields {
		props[f.name] = f.b.Schema()
	}
	if catchall != nil {
		o.AdditionalProperties = catchall.Schema()
	}
	return &ObjectBuilder{node: node{js.Object(props, o)}, fields: fields, catchall: catchall, opts: o}
}

// with returns a copy of the builder with fields replaced.
func (b *ObjectBuilder) with(fields []field) *ObjectBuilder {
	return newObject(fields, b.catchall, b.opts)
}

// Field adds (or replaces) a property. Wrap fb with Optional to make it
// optional.
func (b *ObjectBuilder) Field(name string, fb Builder) *ObjectBuilder {
	out := slices.Clone(b.fields)
	if i := b.index(name); i >= 0 {
		out[i] = field{name, fb}
	} else {
		out = append(out, field{name, fb})
	}
	return b.with(out)
}

func (b *ObjectBuilder) index(name string) int {
	return slices.IndexFunc(b.fields, func(f field) bool { return f.name == name })
}

// Get returns the builder of a property.
func (b *ObjectBuilder) Get(name string) (Builder, bool) {
	if i := b.index(name); i >= 0 {
		return b.fields[i].b, true
	}
	return nil, false
}

// Shape returns a copy of the property builders keyed by name.
func (b *ObjectBuilder) Shape() map[string]Builder {
	out := make(map[string]Builder, len(b.fields))
	for _, f := range b.fields {
		out[f.name] = f.b
	}
	return out
}

// Keys returns the property names in declaration order.
func (b *ObjectBuilder) Keys() []string {
	out := make([]string, len(b.fields))
	for i, f := range b.fields {
		out[i] = f.name
	}
	return out
}

// Extend adds the properties of other, replacing same-named ones.
func (b *ObjectBuilder) Extend(other *ObjectBuilder) *ObjectBuilder {
	out := b
	for _, f := range other.fields {
		out = out.Field(f.name, f.b)
	}
	return out
}

// Merge is Extend that also adopts the unknown-key policy of other.
func (b *ObjectBuilder) Merge(other *ObjectBuilder) *ObjectBuilder {
	ext := b.Extend(other)
	o := ext.opts
	o.AdditionalProperties = other.opts.AdditionalProperties
	return newObject(ext.fields, other.catchall, o)
}

// Pick keeps only the named properties.
func (b *ObjectBuilder) Pick(names ...string) *ObjectBuilder {
	out := make([]field, 0, len(names))
	for _, f := range b.fields {
		if slices.Contains(names, f.name) {
			out = append(out, f)
		}
	}
	return b.with(out)
}

// Omit drops the named properties.
func (b *ObjectBuilder) Omit(names ...string) *ObjectBuilder {
	out := make([]field, 0, len(b.fields))
	for _, f := range b.fields {
		if !slices.Contains(names, f.name) {
			out = append(out, f)
		}
	}
	return b.with(out)
}

// Partial makes every property optional.
func (b *ObjectBuilder) Partial() *ObjectBuilder {
	out := make([]field, len(b.fields))
	for i, f := range b.fields {
		if _, ok := f.b.(*OptionalBuilder); ok {
			out[i] = f
			continue
		}
		out[i] = field{f.name, Optional(f.b)}
	}
	return b.with(out)
}

// Required makes every property required.
func (b *ObjectBuilder) Required() *ObjectBuilder {
	out := make([]field, len(b.fields))
	for i, f := range b.fields {
		if ob, ok := f.b.(*OptionalBuilder); ok {
			out[i] = field{f.name, ob.Unwrap()}
			continue
		}
		out[i] = f
	}
	return b.with(out)
}

// Strict rejects keys that are not declared properties.
func (b *ObjectBuilder) Strict() *ObjectBuilder {
	o := b.opts
	o.AdditionalProperties = js.False()
	return newObject(b.fields, nil, o)
}

// Passthrough allows undeclared keys (the default).
func (b *ObjectBuilder) Passthrough() *ObjectBuilder {
	o := b.opts
	o.AdditionalProperties = nil
	return newObject(b.fields, nil, o)
}

// Catchall validates undeclared keys against c.
func (b *ObjectBuilder) Catchall(c Builder) *ObjectBuilder {
	return newObject(b.fields, c, b.opts)
}

// MinProperties sets the minimum number of keys.
func (b *ObjectBuilder) MinProperties(n int) *ObjectBuilder {
	o := b.opts
	o.MinProperties = &n
	return newObject(b.fields, b.catchall, o)
}

// MaxProperties sets the maximum number of keys.
func (b *ObjectBuilder) MaxProperties(n int) *ObjectBuilder {
	o := b.opts
	o.MaxProperties = &n
	return newObject(b.fields, b.catchall, o)
}

// KeyOf returns a union of the property names as string literals.
func (b *ObjectBuilder) KeyOf() *UnionBuilder { return KeyOf(b) }

// ID sets the $id so the schema can be the target of Ref.
func (b *ObjectBuilder) ID(id string) *ObjectBuilder {
	o := b.opts
	o.ID = id
	return newObject(b.fields, b.catchall, o)
}

// Describe sets the description.
func (b *ObjectBuilder) Describe(d string) *ObjectBuilder {
	o := b.opts
	o.Description = d
	return newObject(b.fields, b.catchall, o)
}

// Title sets the title.
func (b *ObjectBuilder) Title(t string) *ObjectBuilder {
	o := b.opts
	o.Title = t
	return newObject(b.fields, b.catchall, o)
}

// RecordBuilder accepts objects mapping keys matching one schema to values
// matching another.
type RecordBuilder struct {
	node
	key, value Builder
	meta       js.Meta
}

// Record returns a builder for key/value maps. key is usually String(),
// Integer() or a union of string literals.
func Record(key, value Builder) *RecordBuilder { return newRecord(key, value, js.Meta{}) }

func newRecord(key, value Builder, m js.Meta) *RecordBuilder {
	return &RecordBuilder{node{js.Record(key.Schema(), value.Schema(), m)}, key, value, m}
}

// Key returns the key builder.
func (b *RecordBuilder) Key() Builder { return b.key }

// Value returns the value builder.
func (b *RecordBuilder) Value() Builder { return b.value }

// Describe sets the description.
func (b *RecordBuilder) Describe(d string) *RecordBuilder {
	m := b.meta
	m.Description = d
	return newRecord(b.key, b.value, m)
}
