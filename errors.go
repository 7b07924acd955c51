package fluentcheck

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/goccy/go-json"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodePattern        = "pattern"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidLiteral = "invalid_literal"
	CodeInvalidFormat  = "invalid_format"
	CodeInvalidUnion   = "invalid_union"
	CodeNotMultipleOf  = "not_multiple_of"
	CodeNotUnique      = "not_unique"
	CodeNotAllowed     = "not_allowed"
	CodeParseError     = "parse_error"
	CodeDuplicateKey   = "duplicate_key"
	CodeCustom         = "custom"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"`              // JSON Pointer of the offending value ("/" for the root).
	Code    string `json:"code"`              // One of the codes listed above.
	Keyword string `json:"keyword,omitempty"` // Schema location of the failing keyword.
	Message string `json:"message"`
	// Value is the offending sub-value as seen by the validator. It is nil when
	// the path cannot be resolved.
	Value any `json:"value,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Diagnoser enumerates the issues a value has against a compiled schema.
// Every Checker implements it.
type Diagnoser interface {
	Errors(v any) iter.Seq[Issue]
}

// ValidationError is returned by Parse when a value does not conform. It keeps
// the rejected value as given and the checker that rejected it; issue details
// are computed only on demand.
type ValidationError struct {
	Value   any
	Checker Diagnoser
	message string
}

// NewValidationError records a failed check of v by c.
func NewValidationError(c Diagnoser, v any) *ValidationError {
	return &ValidationError{
		Value:   v,
		Checker: c,
		message: fmt.Sprintf("fluentcheck: value of type %T does not conform to schema", v),
	}
}

func (e *ValidationError) Error() string { return e.message }

// Issues enumerates the checker's issues for the rejected value.
func (e *ValidationError) Issues() Issues {
	var out Issues
	for it := range e.Checker.Errors(e.Value) {
		out = append(out, it)
	}
	return out
}

// WriteDetails writes one line per issue to w in the form
// "[path] message <value>". It stops at the first write error.
func (e *ValidationError) WriteDetails(w io.Writer) error {
	for it := range e.Checker.Errors(e.Value) {
		if _, err := fmt.Fprintf(w, "[%s] %s <%s>\n", it.Path, it.Message, renderValue(it.Value)); err != nil {
			return err
		}
	}
	return nil
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func renderValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
