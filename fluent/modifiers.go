package fluent

import (
	js "github.com/reoring/fluentcheck/jsonschema"
)

// OptionalBuilder marks a property as optional inside an Object. Elsewhere it
// behaves like the wrapped builder.
type OptionalBuilder struct {
	node
	inner Builder
}

// Optional marks b as an optional property.
func Optional(b Builder) *OptionalBuilder {
	return &OptionalBuilder{node{js.Optional(b.Schema())}, b}
}

// Unwrap returns the wrapped builder.
func (b *OptionalBuilder) Unwrap() Builder { return b.inner }

// ReadonlyBuilder marks a property as readonly (annotated with readOnly).
type ReadonlyBuilder struct {
	node
	inner Builder
}

// Readonly marks b as a readonly property.
func Readonly(b Builder) *ReadonlyBuilder {
	return &ReadonlyBuilder{node{js.Readonly(b.Schema())}, b}
}

// Unwrap returns the wrapped builder.
func (b *ReadonlyBuilder) Unwrap() Builder { return b.inner }

// Optional marks the readonly property as optional too.
func (b *ReadonlyBuilder) Optional() *OptionalBuilder { return Optional(b) }
