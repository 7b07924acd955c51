// Package middleware validates JSON request bodies with a fluentcheck.Checker
// before they reach a handler. Framework adapters live in the echo and gin
// submodules.
package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/reoring/fluentcheck"
	"github.com/reoring/fluentcheck/source"
)

// ctxKeyValue is a typed context key for storing a parsed body.
// Using a generic struct type ensures uniqueness per U.
type ctxKeyValue[U any] struct{}

// ContextWithValue attaches a parsed body to the context.
func ContextWithValue[U any](ctx context.Context, v U) context.Context {
	return context.WithValue(ctx, ctxKeyValue[U]{}, v)
}

// ValueFromContext retrieves the parsed body stored by Validate.
func ValueFromContext[U any](ctx context.Context) (U, bool) {
	v, ok := ctx.Value(ctxKeyValue[U]{}).(U)
	return v, ok
}

// Options tunes body handling.
type Options struct {
	// RejectDuplicateKeys reports repeated object keys as duplicate_key issues.
	RejectDuplicateKeys bool
	// MaxBodyBytes caps the body size; larger bodies fail with parse_error.
	MaxBodyBytes int64
}

// DefaultOptions returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are limited to 1 MiB
func DefaultOptions() Options {
	return Options{RejectDuplicateKeys: true, MaxBodyBytes: 1 << 20}
}

func (o Options) orDefault() Options {
	if o == (Options{}) {
		return DefaultOptions()
	}
	return o
}

// Decode reads a JSON body and parses it with c. When the body is rejected the
// returned Issues describe why; a nil Issues means v is usable.
func Decode[T, U any](c *fluentcheck.Checker[T, U], body io.Reader, opt Options) (U, fluentcheck.Issues) {
	var zero U
	opt = opt.orDefault()
	if opt.MaxBodyBytes > 0 {
		body = io.LimitReader(body, opt.MaxBodyBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return zero, parseIssue(err)
	}
	if opt.MaxBodyBytes > 0 && int64(len(data)) > opt.MaxBodyBytes {
		return zero, parseIssue(errors.New("request body too large"))
	}
	if opt.RejectDuplicateKeys {
		if iss := source.DuplicateKeys(data); len(iss) > 0 {
			return zero, iss
		}
	}
	doc, err := source.JSON(data)
	if err != nil {
		return zero, parseIssue(err)
	}
	v, err := c.Parse(doc)
	if err != nil {
		if ve, ok := fluentcheck.AsValidationError(err); ok {
			return zero, ve.Issues()
		}
		return zero, parseIssue(err)
	}
	return v, nil
}

// Validate parses request JSON via c, stores the result in the request context
// on success, or responds 400 with the issues when the body is rejected.
func Validate[T, U any](c *fluentcheck.Checker[T, U], opt Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, iss := Decode(c, r.Body, opt)
			if iss != nil {
				WriteIssues(w, http.StatusBadRequest, iss)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), v)))
		})
	}
}

// WriteIssues writes ErrorPayload(issues) as JSON with the given status.
func WriteIssues(w http.ResponseWriter, status int, issues []fluentcheck.Issue) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorPayload(issues))
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []fluentcheck.Issue) map[string]any {
	return map[string]any{"issues": issues}
}

func parseIssue(err error) fluentcheck.Issues {
	return fluentcheck.Issues{{Path: "/", Code: fluentcheck.CodeParseError, Message: err.Error()}}
}
