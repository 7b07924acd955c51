package codec

import (
	"github.com/reoring/fluentcheck"
	f "github.com/reoring/fluentcheck/fluent"
)

// Identity returns a checker whose Parse yields the accepted value as T
// without transformation.
func Identity[T any](b f.Builder, opts ...fluentcheck.CompileOption) (*fluentcheck.TypeCheck[T], error) {
	return f.CompileAs[T](b, opts...)
}
