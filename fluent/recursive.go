package fluent

import (
	js "github.com/reoring/fluentcheck/jsonschema"
)

// ThisBuilder refers to the recursive schema being defined.
type ThisBuilder struct{ node }

// RecursiveBuilder holds a self-referential schema.
type RecursiveBuilder struct {
	node
	body func(this *ThisBuilder) Builder
	meta js.Meta
}

// Recursive defines a schema that refers to itself through the ThisBuilder
// passed to body:
//
//	node := fluent.Recursive(func(this *fluent.ThisBuilder) fluent.Builder {
//	    return fluent.Object().
//	        Field("id", fluent.String()).
//	        Field("children", fluent.Array(this))
//	})
//
// The schema gets a generated $id unless ID is called.
func Recursive(body func(this *ThisBuilder) Builder) *RecursiveBuilder {
	return newRecursive(body, js.Meta{})
}

func newRecursive(body func(this *ThisBuilder) Builder, m js.Meta) *RecursiveBuilder {
	s := js.Recursive(func(this *js.Schema) *js.Schema {
		return body(&ThisBuilder{node{this}}).Schema()
	}, m)
	// keep the generated $id stable across later chain calls
	m.ID = s.ID
	return &RecursiveBuilder{node{s}, body, m}
}

// ID sets the $id.
func (b *RecursiveBuilder) ID(id string) *RecursiveBuilder {
	m := b.meta
	m.ID = id
	return newRecursive(b.body, m)
}

// Describe sets the description.
func (b *RecursiveBuilder) Describe(d string) *RecursiveBuilder {
	m := b.meta
	m.Description = d
	return newRecursive(b.body, m)
}

// RefBuilder refers to a schema registered by $id (see WithReferences).
type RefBuilder struct {
	node
	id   string
	meta js.Meta
}

// Ref returns a builder referring to the schema with the given $id.
func Ref(id string) *RefBuilder { return newRef(id, js.Meta{}) }

// RefTo refers to b by its $id. b must have one (ObjectBuilder.ID).
func RefTo(b Builder) *RefBuilder { return Ref(b.Schema().ID) }

func newRef(id string, m js.Meta) *RefBuilder { return &RefBuilder{node{js.Ref(id, m)}, id, m} }

// Describe sets the description.
func (b *RefBuilder) Describe(d string) *RefBuilder {
	m := b.meta
	m.Description = d
	return newRef(b.id, m)
}
