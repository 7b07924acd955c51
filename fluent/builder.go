package fluent

import (
	"github.com/reoring/fluentcheck"
	js "github.com/reoring/fluentcheck/jsonschema"
)

// Builder is implemented by every builder in this package.
type Builder interface {
	// Schema returns the handle built so far. It must not be modified.
	Schema() *js.Schema
}

// node holds the schema handle of a builder and provides the accessors every
// builder shares.
type node struct{ schema *js.Schema }

// Schema returns the underlying schema handle.
func (n node) Schema() *js.Schema { return n.schema }

// Compile binds the schema to a checker that returns accepted values as is.
func (n node) Compile(opts ...fluentcheck.CompileOption) (*fluentcheck.TypeCheck[any], error) {
	return fluentcheck.Compile[any](n.schema, opts...)
}

// MustCompile is like Compile but panics on error.
func (n node) MustCompile(opts ...fluentcheck.CompileOption) *fluentcheck.TypeCheck[any] {
	c, err := n.Compile(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// CompileAs binds b to a checker whose Parse yields T. Accepted values that
// are not already a T are converted through JSON.
func CompileAs[T any](b Builder, opts ...fluentcheck.CompileOption) (*fluentcheck.TypeCheck[T], error) {
	return fluentcheck.Compile[T](b.Schema(), opts...)
}

// MustCompileAs is like CompileAs but panics on error.
func MustCompileAs[T any](b Builder, opts ...fluentcheck.CompileOption) *fluentcheck.TypeCheck[T] {
	c, err := CompileAs[T](b, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// CompileTransform binds b to a checker whose Parse applies fn to accepted
// values.
func CompileTransform[T, U any](b Builder, fn func(T) U, opts ...fluentcheck.CompileOption) (*fluentcheck.Checker[T, U], error) {
	return fluentcheck.CompileTransform(b.Schema(), fn, opts...)
}

// MustCompileTransform is like CompileTransform but panics on error.
func MustCompileTransform[T, U any](b Builder, fn func(T) U, opts ...fluentcheck.CompileOption) *fluentcheck.Checker[T, U] {
	c, err := CompileTransform(b, fn, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// WithReferences registers the schemas of bs for Ref lookups.
func WithReferences(bs ...Builder) fluentcheck.CompileOption {
	return fluentcheck.WithReferences(schemas(bs)...)
}

func schemas(bs []Builder) []*js.Schema {
	out := make([]*js.Schema, len(bs))
	for i, b := range bs {
		out[i] = b.Schema()
	}
	return out
}
