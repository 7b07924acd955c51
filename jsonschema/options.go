package jsonschema

// Meta carries annotations every constructor accepts.
type Meta struct {
	ID          string
	Title       string
	Description string
	Default     any
	Examples    []any
	ReadOnly    bool
	WriteOnly   bool
}

func (m Meta) apply(s *Schema) {
	if m.ID != "" {
		s.ID = m.ID
	}
	if m.Title != "" {
		s.Title = m.Title
	}
	if m.Description != "" {
		s.Description = m.Description
	}
	if m.Default != nil {
		s.Default = m.Default
	}
	if len(m.Examples) > 0 {
		s.Examples = m.Examples
	}
	if m.ReadOnly {
		s.ReadOnly = true
	}
	if m.WriteOnly {
		s.WriteOnly = true
	}
}

// StringOptions tunes String.
type StringOptions struct {
	Meta
	MinLength *int
	MaxLength *int
	Pattern   string
	Format    string
}

// NumberOptions tunes Number and Integer.
type NumberOptions struct {
	Meta
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
}

// ArrayOptions tunes Array.
type ArrayOptions struct {
	Meta
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
	Contains    *Schema
	MinContains *int
	MaxContains *int
}

// ObjectOptions tunes Object. AdditionalProperties nil leaves unknown keys
// unconstrained; False() rejects them; any other schema validates them.
type ObjectOptions struct {
	Meta
	AdditionalProperties *Schema
	MinProperties        *int
	MaxProperties        *int
}

// last returns the final options value, or the zero value when none is given.
func last[O any](opts []O) O {
	var o O
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	return o
}
