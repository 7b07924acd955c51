// Package fluentcheck compiles JSON Schema handles into reusable checkers.
//
// - Compile/CompileTransform bind a *jsonschema.Schema to a compiled validator
// - Check reports conformance, Errors enumerates Issues lazily, Parse returns the value or its transform
// - ValidationError keeps the rejected value and checker; WriteDetails prints "[path] message <value>" lines
//
// Design policy:
// - Schema construction lives in jsonschema/, the chainable builders in fluent/.
// - Validation itself is delegated to github.com/santhosh-tekuri/jsonschema/v5.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := fluent.Object().
//	    Field("name", fluent.String()).
//	    Field("age", fluent.Optional(fluent.Integer()))
//	check := user.MustCompile()
//	ok := check.Check(map[string]any{"name": "a"})
//	v, err := check.Parse(input)
//	if ve, ok := fluentcheck.AsValidationError(err); ok {
//	    _ = ve.WriteDetails(os.Stderr)
//	}
package fluentcheck
