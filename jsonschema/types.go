package jsonschema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/google/uuid"
)

// Record key patterns.
const (
	PatternStringKey = "^.*$"
	PatternNumberKey = "^(0|[1-9][0-9]*)$"
)

// Properties maps property names to their schemas.
type Properties map[string]*Schema

// Any accepts every value.
func Any(opts ...Meta) *Schema {
	s := &Schema{Kind: KindAny}
	last(opts).apply(s)
	return s
}

// Unknown accepts every value.
func Unknown(opts ...Meta) *Schema {
	s := &Schema{Kind: KindUnknown}
	last(opts).apply(s)
	return s
}

// Never rejects every value.
func Never(opts ...Meta) *Schema {
	s := &Schema{Kind: KindNever, Not: &Schema{}}
	last(opts).apply(s)
	return s
}

// Null accepts only null.
func Null(opts ...Meta) *Schema {
	s := &Schema{Kind: KindNull, Type: "null"}
	last(opts).apply(s)
	return s
}

// Boolean accepts true and false.
func Boolean(opts ...Meta) *Schema {
	s := &Schema{Kind: KindBoolean, Type: "boolean"}
	last(opts).apply(s)
	return s
}

// String accepts strings.
func String(opts ...StringOptions) *Schema {
	o := last(opts)
	s := &Schema{
		Kind:      KindString,
		Type:      "string",
		MinLength: o.MinLength,
		MaxLength: o.MaxLength,
		Pattern:   o.Pattern,
		Format:    o.Format,
	}
	o.Meta.apply(s)
	return s
}

// Number accepts any number.
func Number(opts ...NumberOptions) *Schema {
	return numeric(KindNumber, "number", last(opts))
}

// Integer accepts numbers without a fractional part.
func Integer(opts ...NumberOptions) *Schema {
	return numeric(KindInteger, "integer", last(opts))
}

func numeric(kind Kind, typ string, o NumberOptions) *Schema {
	s := &Schema{
		Kind:             kind,
		Type:             typ,
		Minimum:          o.Minimum,
		Maximum:          o.Maximum,
		ExclusiveMinimum: o.ExclusiveMinimum,
		ExclusiveMaximum: o.ExclusiveMaximum,
		MultipleOf:       o.MultipleOf,
	}
	o.Meta.apply(s)
	return s
}

// Literal accepts exactly v. The type keyword follows the Go kind of v; a nil
// v yields Null.
func Literal(v any, opts ...Meta) *Schema {
	if v == nil {
		return Null(opts...)
	}
	s := &Schema{Kind: KindLiteral, Const: v, Type: literalType(v)}
	last(opts).apply(s)
	return s
}

func literalType(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return ""
	}
}

// Enum accepts any of values. An empty value list yields Never.
func Enum(values []any, opts ...Meta) *Schema {
	if len(values) == 0 {
		return Never(opts...)
	}
	s := &Schema{Kind: KindEnum, Enum: append([]any(nil), values...)}
	last(opts).apply(s)
	return s
}

// Array accepts arrays whose elements match items.
func Array(items *Schema, opts ...ArrayOptions) *Schema {
	o := last(opts)
	s := &Schema{
		Kind:        KindArray,
		Type:        "array",
		Items:       items,
		MinItems:    o.MinItems,
		MaxItems:    o.MaxItems,
		UniqueItems: o.UniqueItems,
		Contains:    o.Contains,
		MinContains: o.MinContains,
		MaxContains: o.MaxContains,
	}
	o.Meta.apply(s)
	return s
}

// Tuple accepts arrays of exactly len(items) elements matching items
// positionally.
func Tuple(items []*Schema, opts ...Meta) *Schema {
	n := len(items)
	s := &Schema{
		Kind:     KindTuple,
		Type:     "array",
		Items:    False(),
		MinItems: &n,
		MaxItems: &n,
	}
	if n > 0 {
		s.PrefixItems = append([]*Schema(nil), items...)
	}
	last(opts).apply(s)
	return s
}

// Object accepts objects whose listed properties match props. Properties not
// marked optional (see Optional) are required.
func Object(props Properties, opts ...ObjectOptions) *Schema {
	o := last(opts)
	s := &Schema{
		Kind:                 KindObject,
		Type:                 "object",
		AdditionalProperties: o.AdditionalProperties,
		MinProperties:        o.MinProperties,
		MaxProperties:        o.MaxProperties,
	}
	if len(props) > 0 {
		s.Properties = make(map[string]*Schema, len(props))
		for k, v := range props {
			s.Properties[k] = v
			if !v.Modifier.IsOptional() {
				s.Required = append(s.Required, k)
			}
		}
		sort.Strings(s.Required)
	}
	o.Meta.apply(s)
	return s
}

// Record accepts objects whose keys match key and whose values match value.
// A key of literals (Literal, Enum, or a Union of them) yields an Object
// requiring exactly those keys. Other keys select the value schema through
// patternProperties; constraints a pattern cannot carry are kept as
// propertyNames.
func Record(key, value *Schema, opts ...Meta) *Schema {
	if names, ok := literalKeys(key); ok {
		props := make(Properties, len(names))
		for _, n := range names {
			props[n] = value
		}
		s := Object(props, ObjectOptions{AdditionalProperties: False()})
		s.Kind = KindRecord
		last(opts).apply(s)
		return s
	}
	pattern := PatternStringKey
	switch key.Kind {
	case KindInteger, KindNumber:
		pattern = PatternNumberKey
	case KindString:
		if key.Pattern != "" {
			pattern = key.Pattern
		}
	}
	s := &Schema{
		Kind:                 KindRecord,
		Type:                 "object",
		PatternProperties:    map[string]*Schema{pattern: value},
		AdditionalProperties: False(),
	}
	if !patternOnlyKey(key) {
		s.PropertyNames = keyNames(key)
	}
	last(opts).apply(s)
	return s
}

// patternOnlyKey reports whether the key pattern alone captures key.
func patternOnlyKey(key *Schema) bool {
	switch key.Kind {
	case KindInteger, KindNumber:
		return true
	case KindString:
		return key.MinLength == nil && key.MaxLength == nil && key.Format == ""
	}
	return false
}

// keyNames rewrites key to validate property names, which are always strings.
// Numeric variants become the number key pattern and literals their string
// form.
func keyNames(key *Schema) *Schema {
	switch key.Kind {
	case KindInteger, KindNumber:
		return String(StringOptions{Pattern: PatternNumberKey})
	case KindLiteral:
		return Literal(keyString(key.Const))
	case KindEnum:
		vals := make([]any, len(key.Enum))
		for i, v := range key.Enum {
			vals[i] = keyString(v)
		}
		return Enum(vals)
	case KindUnion:
		variants := make([]*Schema, len(key.AnyOf))
		for i, v := range key.AnyOf {
			variants[i] = keyNames(v)
		}
		return Union(variants)
	}
	return key
}

func literalKeys(key *Schema) ([]string, bool) {
	switch key.Kind {
	case KindLiteral:
		if s, ok := keyValue(key.Const); ok {
			return []string{s}, true
		}
	case KindEnum:
		return stringValues(key.Enum)
	case KindUnion:
		out := make([]string, 0, len(key.AnyOf))
		for _, v := range key.AnyOf {
			names, ok := literalKeys(v)
			if !ok {
				return nil, false
			}
			out = append(out, names...)
		}
		return out, true
	}
	return nil, false
}

func stringValues(vals []any) ([]string, bool) {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		s, ok := keyValue(v)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// keyValue renders a literal as the property name it stands for. Only
// strings, numbers and booleans name properties.
func keyValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), true
	}
	return "", false
}

func keyString(v any) any {
	if s, ok := keyValue(v); ok {
		return s
	}
	return v
}

// Union accepts values matching any of variants. No variants yields Never and
// a single variant yields a copy of it.
func Union(variants []*Schema, opts ...Meta) *Schema {
	var s *Schema
	switch len(variants) {
	case 0:
		return Never(opts...)
	case 1:
		s = variants[0].Clone()
	default:
		s = &Schema{Kind: KindUnion, AnyOf: append([]*Schema(nil), variants...)}
	}
	last(opts).apply(s)
	return s
}

// Intersect accepts values matching all of schemas. No schemas yields Never
// and a single schema yields a copy of it.
func Intersect(schemas []*Schema, opts ...Meta) *Schema {
	var s *Schema
	switch len(schemas) {
	case 0:
		return Never(opts...)
	case 1:
		s = schemas[0].Clone()
	default:
		s = &Schema{Kind: KindIntersect, AllOf: append([]*Schema(nil), schemas...)}
	}
	last(opts).apply(s)
	return s
}

// Not accepts values that do not match s.
func Not(s *Schema, opts ...Meta) *Schema {
	out := &Schema{Kind: KindNot, Not: s}
	last(opts).apply(out)
	return out
}

// KeyOf returns a union of the property names of an object schema, sorted.
func KeyOf(object *Schema, opts ...Meta) *Schema {
	keys := make([]string, 0, len(object.Properties))
	for k := range object.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lits := make([]*Schema, len(keys))
	for i, k := range keys {
		lits[i] = Literal(k)
	}
	return Union(lits, opts...)
}

// Optional marks s as an optional property.
func Optional(s *Schema) *Schema {
	out := s.Clone()
	switch s.Modifier {
	case ModifierReadonly, ModifierReadonlyOptional:
		out.Modifier = ModifierReadonlyOptional
	default:
		out.Modifier = ModifierOptional
	}
	return out
}

// Readonly marks s as a readonly property.
func Readonly(s *Schema) *Schema {
	out := s.Clone()
	out.ReadOnly = true
	switch s.Modifier {
	case ModifierOptional, ModifierReadonlyOptional:
		out.Modifier = ModifierReadonlyOptional
	default:
		out.Modifier = ModifierReadonly
	}
	return out
}

// ReadonlyOptional marks s as a readonly, optional property.
func ReadonlyOptional(s *Schema) *Schema {
	return Optional(Readonly(s))
}

// Recursive builds a self-referential schema. The body function receives a
// This node referring to the schema being defined. The $id comes from opts or
// is generated.
func Recursive(body func(this *Schema) *Schema, opts ...Meta) *Schema {
	m := last(opts)
	if m.ID == "" {
		m.ID = "T" + uuid.NewString()
	}
	this := &Schema{Kind: KindThis, Ref: m.ID}
	s := body(this).Clone()
	m.apply(s)
	return s
}

// Ref refers to a schema registered under id.
func Ref(id string, opts ...Meta) *Schema {
	s := &Schema{Kind: KindRef, Ref: id}
	last(opts).apply(s)
	return s
}
