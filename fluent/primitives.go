package fluent

import (
	js "github.com/reoring/fluentcheck/jsonschema"
)

// Common string formats understood by the validator.
const (
	FormatEmail    = "email"
	FormatURI      = "uri"
	FormatUUID     = "uuid"
	FormatDateTime = "date-time"
	FormatDate     = "date"
	FormatIPv4     = "ipv4"
	FormatIPv6     = "ipv6"
	FormatHostname = "hostname"
)

// AnyBuilder accepts every value.
type AnyBuilder struct {
	node
	meta js.Meta
}

// Any returns a builder accepting every value.
func Any() *AnyBuilder { return newAny(js.Meta{}) }

func newAny(m js.Meta) *AnyBuilder { return &AnyBuilder{node{js.Any(m)}, m} }

// Describe sets the description.
func (b *AnyBuilder) Describe(d string) *AnyBuilder { m := b.meta; m.Description = d; return newAny(m) }

// UnknownBuilder accepts every value.
type UnknownBuilder struct {
	node
	meta js.Meta
}

// Unknown returns a builder accepting every value.
func Unknown() *UnknownBuilder { return newUnknown(js.Meta{}) }

func newUnknown(m js.Meta) *UnknownBuilder { return &UnknownBuilder{node{js.Unknown(m)}, m} }

// Describe sets the description.
func (b *UnknownBuilder) Describe(d string) *UnknownBuilder {
	m := b.meta
	m.Description = d
	return newUnknown(m)
}

// NeverBuilder rejects every value.
type NeverBuilder struct {
	node
	meta js.Meta
}

// Never returns a builder rejecting every value.
func Never() *NeverBuilder { return newNever(js.Meta{}) }

func newNever(m js.Meta) *NeverBuilder { return &NeverBuilder{node{js.Never(m)}, m} }

// Describe sets the description.
func (b *NeverBuilder) Describe(d string) *NeverBuilder { m := b.meta; m.Description = d; return newNever(m) }

// NullBuilder accepts null.
type NullBuilder struct {
	node
	meta js.Meta
}

// Null returns a builder accepting only null.
func Null() *NullBuilder { return newNull(js.Meta{}) }

func newNull(m js.Meta) *NullBuilder { return &NullBuilder{node{js.Null(m)}, m} }

// Describe sets the description.
func (b *NullBuilder) Describe(d string) *NullBuilder { m := b.meta; m.Description = d; return newNull(m) }

// BooleanBuilder accepts true and false.
type BooleanBuilder struct {
	node
	meta js.Meta
}

// Boolean returns a builder accepting booleans.
func Boolean() *BooleanBuilder { return newBoolean(js.Meta{}) }

func newBoolean(m js.Meta) *BooleanBuilder { return &BooleanBuilder{node{js.Boolean(m)}, m} }

// Describe sets the description.
func (b *BooleanBuilder) Describe(d string) *BooleanBuilder {
	m := b.meta
	m.Description = d
	return newBoolean(m)
}

// Title sets the title.
func (b *BooleanBuilder) Title(t string) *BooleanBuilder { m := b.meta; m.Title = t; return newBoolean(m) }

// Default records the default value annotation.
func (b *BooleanBuilder) Default(v bool) *BooleanBuilder {
	m := b.meta
	m.Default = v
	return newBoolean(m)
}

// StringBuilder accepts strings.
type StringBuilder struct {
	node
	opts js.StringOptions
}

// String returns a builder accepting strings.
func String() *StringBuilder { return newString(js.StringOptions{}) }

func newString(o js.StringOptions) *StringBuilder { return &StringBuilder{node{js.String(o)}, o} }

// MinLength sets the minimum length in characters.
func (b *StringBuilder) MinLength(n int) *StringBuilder {
	o := b.opts
	o.MinLength = &n
	return newString(o)
}

// MaxLength sets the maximum length in characters.
func (b *StringBuilder) MaxLength(n int) *StringBuilder {
	o := b.opts
	o.MaxLength = &n
	return newString(o)
}

// Length fixes the length in characters.
func (b *StringBuilder) Length(n int) *StringBuilder { return b.MinLength(n).MaxLength(n) }

// NonEmpty requires at least one character.
func (b *StringBuilder) NonEmpty() *StringBuilder { return b.MinLength(1) }

// Pattern sets an ECMA-262 regular expression the value must match.
func (b *StringBuilder) Pattern(re string) *StringBuilder {
	o := b.opts
	o.Pattern = re
	return newString(o)
}

// Format sets the format keyword.
func (b *StringBuilder) Format(f string) *StringBuilder {
	o := b.opts
	o.Format = f
	return newString(o)
}

func (b *StringBuilder) Email() *StringBuilder    { return b.Format(FormatEmail) }
func (b *StringBuilder) URI() *StringBuilder      { return b.Format(FormatURI) }
func (b *StringBuilder) UUID() *StringBuilder     { return b.Format(FormatUUID) }
func (b *StringBuilder) DateTime() *StringBuilder { return b.Format(FormatDateTime) }
func (b *StringBuilder) Date() *StringBuilder     { return b.Format(FormatDate) }

// Describe sets the description.
func (b *StringBuilder) Describe(d string) *StringBuilder {
	o := b.opts
	o.Description = d
	return newString(o)
}

// Title sets the title.
func (b *StringBuilder) Title(t string) *StringBuilder {
	o := b.opts
	o.Title = t
	return newString(o)
}

// Default records the default value annotation.
func (b *StringBuilder) Default(v string) *StringBuilder {
	o := b.opts
	o.Default = v
	return newString(o)
}

// Examples records example values.
func (b *StringBuilder) Examples(vs ...string) *StringBuilder {
	o := b.opts
	o.Examples = make([]any, len(vs))
	for i, v := range vs {
		o.Examples[i] = v
	}
	return newString(o)
}

// NumberBuilder accepts numbers.
type NumberBuilder struct {
	node
	opts js.NumberOptions
}

// Number returns a builder accepting any number.
func Number() *NumberBuilder { return newNumber(js.NumberOptions{}) }

func newNumber(o js.NumberOptions) *NumberBuilder { return &NumberBuilder{node{js.Number(o)}, o} }

// Min sets the inclusive minimum.
func (b *NumberBuilder) Min(v float64) *NumberBuilder { return newNumber(withMin(b.opts, v)) }

// Max sets the inclusive maximum.
func (b *NumberBuilder) Max(v float64) *NumberBuilder { return newNumber(withMax(b.opts, v)) }

// GreaterThan sets the exclusive minimum.
func (b *NumberBuilder) GreaterThan(v float64) *NumberBuilder { return newNumber(withGT(b.opts, v)) }

// LessThan sets the exclusive maximum.
func (b *NumberBuilder) LessThan(v float64) *NumberBuilder { return newNumber(withLT(b.opts, v)) }

// MultipleOf requires the value to be a multiple of v.
func (b *NumberBuilder) MultipleOf(v float64) *NumberBuilder {
	return newNumber(withMultipleOf(b.opts, v))
}

func (b *NumberBuilder) Positive() *NumberBuilder    { return b.GreaterThan(0) }
func (b *NumberBuilder) NonNegative() *NumberBuilder { return b.Min(0) }

// Describe sets the description.
func (b *NumberBuilder) Describe(d string) *NumberBuilder {
	o := b.opts
	o.Description = d
	return newNumber(o)
}

// Title sets the title.
func (b *NumberBuilder) Title(t string) *NumberBuilder {
	o := b.opts
	o.Title = t
	return newNumber(o)
}

// Default records the default value annotation.
func (b *NumberBuilder) Default(v float64) *NumberBuilder {
	o := b.opts
	o.Default = v
	return newNumber(o)
}

// IntegerBuilder accepts numbers without a fractional part.
type IntegerBuilder struct {
	node
	opts js.NumberOptions
}

// Integer returns a builder accepting integers.
func Integer() *IntegerBuilder { return newInteger(js.NumberOptions{}) }

func newInteger(o js.NumberOptions) *IntegerBuilder { return &IntegerBuilder{node{js.Integer(o)}, o} }

// Min sets the inclusive minimum.
func (b *IntegerBuilder) Min(v int64) *IntegerBuilder { return newInteger(withMin(b.opts, float64(v))) }

// Max sets the inclusive maximum.
func (b *IntegerBuilder) Max(v int64) *IntegerBuilder { return newInteger(withMax(b.opts, float64(v))) }

// GreaterThan sets the exclusive minimum.
func (b *IntegerBuilder) GreaterThan(v int64) *IntegerBuilder {
	return newInteger(withGT(b.opts, float64(v)))
}

// LessThan sets the exclusive maximum.
func (b *IntegerBuilder) LessThan(v int64) *IntegerBuilder {
	return newInteger(withLT(b.opts, float64(v)))
}

// MultipleOf requires the value to be a multiple of v.
func (b *IntegerBuilder) MultipleOf(v int64) *IntegerBuilder {
	return newInteger(withMultipleOf(b.opts, float64(v)))
}

func (b *IntegerBuilder) Positive() *IntegerBuilder    { return b.GreaterThan(0) }
func (b *IntegerBuilder) NonNegative() *IntegerBuilder { return b.Min(0) }

// Describe sets the description.
func (b *IntegerBuilder) Describe(d string) *IntegerBuilder {
	o := b.opts
	o.Description = d
	return newInteger(o)
}

// Title sets the title.
func (b *IntegerBuilder) Title(t string) *IntegerBuilder {
	o := b.opts
	o.Title = t
	return newInteger(o)
}

// Default records the default value annotation.
func (b *IntegerBuilder) Default(v int64) *IntegerBuilder {
	o := b.opts
	o.Default = v
	return newInteger(o)
}

func withMin(o js.NumberOptions, v float64) js.NumberOptions { o.Minimum = &v; return o }
func withMax(o js.NumberOptions, v float64) js.NumberOptions { o.Maximum = &v; return o }
func withGT(o js.NumberOptions, v float64) js.NumberOptions  { o.ExclusiveMinimum = &v; return o }
func withLT(o js.NumberOptions, v float64) js.NumberOptions  { o.ExclusiveMaximum = &v; return o }

func withMultipleOf(o js.NumberOptions, v float64) js.NumberOptions {
	o.MultipleOf = &v
	return o
}
