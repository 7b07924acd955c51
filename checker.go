package fluentcheck

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	sjs "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reoring/fluentcheck/i18n"
	js "github.com/reoring/fluentcheck/jsonschema"
)

// Checker is a schema bound to its compiled validator. T is the type Parse
// produces after a successful check and U the type it returns: for a plain
// checker U is T and the value is returned as is, for a transformed checker
// the transform maps T to U.
//
// A Checker is immutable and safe for concurrent use.
type Checker[T, U any] struct {
	schema    *js.Schema
	validator *sjs.Schema
	transform func(T) U
}

// TypeCheck is a checker without a transform.
type TypeCheck[T any] = Checker[T, T]

var _ Diagnoser = (*Checker[any, any])(nil)

// Compile binds s to a compiled validator.
func Compile[T any](s *js.Schema, opts ...CompileOption) (*TypeCheck[T], error) {
	v, err := compileSchema(s, newCompileConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Checker[T, T]{schema: s, validator: v}, nil
}

// CompileTransform binds s to a compiled validator and a transform applied to
// every value that passes the check.
func CompileTransform[T, U any](s *js.Schema, fn func(T) U, opts ...CompileOption) (*Checker[T, U], error) {
	if fn == nil {
		return nil, errors.New("fluentcheck: nil transform")
	}
	v, err := compileSchema(s, newCompileConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Checker[T, U]{schema: s, validator: v, transform: fn}, nil
}

// Schema returns the handle the checker was compiled from.
func (c *Checker[T, U]) Schema() *js.Schema { return c.schema }

// Check reports whether v conforms to the schema.
func (c *Checker[T, U]) Check(v any) bool {
	_, err := c.validate(v)
	return err == nil
}

// Errors returns the issues v has against the schema. The sequence is lazy and
// may be iterated any number of times; each iteration validates again.
func (c *Checker[T, U]) Errors(v any) iter.Seq[Issue] {
	return func(yield func(Issue) bool) {
		inst, err := c.validate(v)
		if err == nil {
			return
		}
		var ve *sjs.ValidationError
		if !errors.As(err, &ve) {
			yield(Issue{Path: "/", Code: CodeInvalidType, Message: message(CodeInvalidType, err.Error()), Value: v})
			return
		}
		leaves(ve, inst, yield)
	}
}

// Parse returns v (or its transform) when it conforms. Otherwise it returns a
// *ValidationError and the transform is not called.
func (c *Checker[T, U]) Parse(v any) (U, error) {
	var zero U
	if !c.Check(v) {
		return zero, NewValidationError(c, v)
	}
	t, err := as[T](v)
	if err != nil {
		return zero, err
	}
	if c.transform == nil {
		u, _ := any(t).(U)
		return u, nil
	}
	return c.transform(t), nil
}

// validate runs the compiled validator. Values that are not JSON-native are
// validated through their JSON projection; the instance actually validated is
// returned for pointer resolution.
func (c *Checker[T, U]) validate(v any) (any, error) {
	err := c.validator.Validate(v)
	var typeErr sjs.InvalidJSONTypeError
	if !errors.As(err, &typeErr) {
		return v, err
	}
	pv, perr := project(v)
	if perr != nil {
		return v, err
	}
	return pv, c.validator.Validate(pv)
}

// leaves yields one Issue per leaf of the validation error tree, depth first.
// A failed union is reported once rather than per branch.
func leaves(ve *sjs.ValidationError, inst any, yield func(Issue) bool) bool {
	if len(ve.Causes) == 0 || isUnionKeyword(lastKeyword(ve.KeywordLocation)) {
		return yield(issueFrom(ve, inst))
	}
	for _, cause := range ve.Causes {
		if !leaves(cause, inst, yield) {
			return false
		}
	}
	return true
}

func issueFrom(ve *sjs.ValidationError, inst any) Issue {
	code := codeForKeyword(lastKeyword(ve.KeywordLocation))
	path := ve.InstanceLocation
	if path == "" {
		path = "/"
	}
	val, _ := resolvePointer(inst, ve.InstanceLocation)
	return Issue{
		Path:    path,
		Code:    code,
		Keyword: ve.KeywordLocation,
		Message: message(code, ve.Message),
		Value:   val,
	}
}

func message(code, fallback string) string {
	return i18n.T(code, map[string]string{"message": fallback})
}

func lastKeyword(loc string) string {
	if i := strings.LastIndexByte(loc, '/'); i >= 0 {
		return loc[i+1:]
	}
	return loc
}

func isUnionKeyword(kw string) bool { return kw == "anyOf" || kw == "oneOf" }

func codeForKeyword(kw string) string {
	switch kw {
	case "type":
		return CodeInvalidType
	case "required", "dependentRequired":
		return CodeRequired
	case "additionalProperties", "unevaluatedProperties", "propertyNames":
		return CodeUnknownKey
	case "minimum", "exclusiveMinimum":
		return CodeTooSmall
	case "maximum", "exclusiveMaximum":
		return CodeTooBig
	case "minLength", "minItems", "minProperties", "minContains", "contains":
		return CodeTooShort
	case "maxLength", "maxItems", "maxProperties", "maxContains":
		return CodeTooLong
	case "pattern":
		return CodePattern
	case "enum":
		return CodeInvalidEnum
	case "const":
		return CodeInvalidLiteral
	case "format":
		return CodeInvalidFormat
	case "anyOf", "oneOf":
		return CodeInvalidUnion
	case "multipleOf":
		return CodeNotMultipleOf
	case "uniqueItems":
		return CodeNotUnique
	case "not", "items", "additionalItems", "unevaluatedItems", "false":
		return CodeNotAllowed
	}
	return CodeCustom
}

// as converts a checked value to T: directly when it already is a T,
// otherwise through its JSON projection.
func as[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var out T
	if err := reproject(v, &out); err != nil {
		return out, fmt.Errorf("fluentcheck: convert %T to %T: %w", v, out, err)
	}
	return out, nil
}
