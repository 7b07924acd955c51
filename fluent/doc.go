// Package fluent provides chainable builders over the jsonschema constructors.
//
// Every builder wraps the *jsonschema.Schema its constructor produced; each
// chain call returns a new builder and leaves the receiver unchanged, so
// partially built schemas can be shared:
//
//	base := fluent.Object().Field("id", fluent.String().UUID())
//	user := base.Field("name", fluent.String().NonEmpty())
//	patch := user.Partial()
//
// Compile (on any builder) and CompileAs/CompileTransform bind a builder to a
// fluentcheck.Checker.
package fluent
