package jsonschema

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Kind records which constructor produced a Schema. It is not serialized.
type Kind string

const (
	KindAny       Kind = "Any"
	KindUnknown   Kind = "Unknown"
	KindNever     Kind = "Never"
	KindNull      Kind = "Null"
	KindBoolean   Kind = "Boolean"
	KindString    Kind = "String"
	KindNumber    Kind = "Number"
	KindInteger   Kind = "Integer"
	KindLiteral   Kind = "Literal"
	KindEnum      Kind = "Enum"
	KindArray     Kind = "Array"
	KindTuple     Kind = "Tuple"
	KindObject    Kind = "Object"
	KindRecord    Kind = "Record"
	KindUnion     Kind = "Union"
	KindIntersect Kind = "Intersect"
	KindNot       Kind = "Not"
	KindThis      Kind = "This"
	KindRef       Kind = "Ref"
)

// Modifier marks a property schema as optional and/or readonly. Object uses it
// to derive the required list; it is not serialized.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierOptional
	ModifierReadonly
	ModifierReadonlyOptional
)

// IsOptional reports whether the modifier excludes the property from required.
func (m Modifier) IsOptional() bool {
	return m == ModifierOptional || m == ModifierReadonlyOptional
}

// Schema is a JSON Schema (2020-12 vocabulary) node.
//
// Values returned by the constructors in this package must be treated as
// immutable; use Clone before changing one.
type Schema struct {
	Kind     Kind     `json:"-"`
	Modifier Modifier `json:"-"`
	// Bool, when set, makes the node a boolean schema (true accepts anything,
	// false rejects everything). All other fields are ignored on output.
	Bool *bool `json:"-"`
	// Extra holds keywords this struct does not model, preserved across
	// unmarshal/marshal.
	Extra map[string]any `json:"-"`

	// Core
	Dialect string             `json:"$schema,omitempty"`
	ID      string             `json:"$id,omitempty"`
	Ref     string             `json:"$ref,omitempty"`
	Defs    map[string]*Schema `json:"$defs,omitempty"`

	// Annotations
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Examples    []any  `json:"examples,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`
	WriteOnly   bool   `json:"writeOnly,omitempty"`

	Type  string `json:"type,omitempty"`
	Const any    `json:"const,omitempty"`
	Enum  []any  `json:"enum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Format    string `json:"format,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	PatternProperties    map[string]*Schema `json:"patternProperties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`

	// Array
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	Items       *Schema   `json:"items,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`
	UniqueItems bool      `json:"uniqueItems,omitempty"`
	Contains    *Schema   `json:"contains,omitempty"`
	MinContains *int      `json:"minContains,omitempty"`
	MaxContains *int      `json:"maxContains,omitempty"`

	// Composition
	AnyOf []*Schema `json:"anyOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`
}

// plain strips the methods of Schema so (un)marshalling does not recurse.
type plain Schema

// True returns the boolean schema that accepts every value.
func True() *Schema { b := true; return &Schema{Bool: &b} }

// False returns the boolean schema that rejects every value.
func False() *Schema { b := false; return &Schema{Bool: &b} }

// MarshalJSON renders boolean schemas as true/false and merges Extra keywords.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Bool != nil {
		return json.Marshal(*s.Bool)
	}
	b, err := json.Marshal((*plain)(s))
	if err != nil || len(s.Extra) == 0 {
		return b, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if _, ok := m[k]; ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m[k] = raw
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts boolean schemas and keeps unmodelled keywords in Extra.
// Keyword shapes the typed fields cannot hold (array-valued type or items,
// boolean exclusiveMinimum, null const or default) are kept in Extra too.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = Schema{Bool: &b}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	extra := make(map[string]any)
	for k, v := range raw {
		if _, ok := knownKeywords[k]; ok && !foreignShape(k, v) {
			continue
		}
		var x any
		if err := json.Unmarshal(v, &x); err != nil {
			return err
		}
		extra[k] = x
		delete(raw, k)
	}
	rest, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(rest, &p); err != nil {
		return err
	}
	*s = Schema(p)
	if len(extra) > 0 {
		s.Extra = extra
	}
	return nil
}

func foreignShape(k string, v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	switch k {
	case "type", "items":
		return v[0] == '['
	case "exclusiveMinimum", "exclusiveMaximum":
		return v[0] == 't' || v[0] == 'f'
	case "const", "default":
		// omitempty would drop a null value
		return bytes.Equal(v, []byte("null"))
	}
	return false
}

var knownKeywords = map[string]struct{}{
	"$schema": {}, "$id": {}, "$ref": {}, "$defs": {},
	"title": {}, "description": {}, "default": {}, "examples": {}, "readOnly": {}, "writeOnly": {},
	"type": {}, "const": {}, "enum": {},
	"minLength": {}, "maxLength": {}, "pattern": {}, "format": {},
	"minimum": {}, "maximum": {}, "exclusiveMinimum": {}, "exclusiveMaximum": {}, "multipleOf": {},
	"properties": {}, "patternProperties": {}, "additionalProperties": {}, "required": {},
	"minProperties": {}, "maxProperties": {}, "propertyNames": {},
	"prefixItems": {}, "items": {}, "minItems": {}, "maxItems": {}, "uniqueItems": {},
	"contains": {}, "minContains": {}, "maxContains": {},
	"anyOf": {}, "allOf": {}, "oneOf": {}, "not": {},
}

// Parse decodes a JSON Schema document.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Clone returns a deep copy of s. Const, Default, Examples and Extra values are
// shared since they are never modified in place.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Bool != nil {
		b := *s.Bool
		out.Bool = &b
	}
	out.Defs = cloneMap(s.Defs)
	out.Properties = cloneMap(s.Properties)
	out.PatternProperties = cloneMap(s.PatternProperties)
	out.AdditionalProperties = s.AdditionalProperties.Clone()
	out.PropertyNames = s.PropertyNames.Clone()
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	out.PrefixItems = cloneSlice(s.PrefixItems)
	out.Items = s.Items.Clone()
	out.Contains = s.Contains.Clone()
	out.AnyOf = cloneSlice(s.AnyOf)
	out.AllOf = cloneSlice(s.AllOf)
	out.OneOf = cloneSlice(s.OneOf)
	out.Not = s.Not.Clone()
	return &out
}

func cloneMap(in map[string]*Schema) map[string]*Schema {
	if in == nil {
		return nil
	}
	out := make(map[string]*Schema, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}

func cloneSlice(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}
	return out
}
