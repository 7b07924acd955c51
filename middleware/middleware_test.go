package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/reoring/fluentcheck"
	f "github.com/reoring/fluentcheck/fluent"
	"github.com/reoring/fluentcheck/middleware"
)

type user struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	c := f.MustCompileAs[user](f.Object().
		Field("name", f.String().NonEmpty()).
		Field("age", f.Optional(f.Integer().NonNegative())))
	return middleware.Validate(c, middleware.Options{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.ValueFromContext[user](r.Context())
		if !ok {
			t.Errorf("parsed body missing from context")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(u.Name))
	}))
}

func serve(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	h.ServeHTTP(rec, req)
	return rec
}

func issuesOf(t *testing.T, rec *httptest.ResponseRecorder) []fluentcheck.Issue {
	t.Helper()
	var payload struct {
		Issues []fluentcheck.Issue `json:"issues"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload %q: %v", rec.Body.String(), err)
	}
	return payload.Issues
}

func TestValidate_Accepts(t *testing.T) {
	rec := serve(newHandler(t), `{"name":"reo","age":3}`)
	if rec.Code != http.StatusOK || rec.Body.String() != "reo" {
		t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestValidate_RejectsInvalidBody(t *testing.T) {
	rec := serve(newHandler(t), `{"name":"","age":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	iss := issuesOf(t, rec)
	paths := map[string]bool{}
	for _, it := range iss {
		paths[it.Path] = true
	}
	if !paths["/name"] || !paths["/age"] {
		t.Fatalf("expected issues at /name and /age, got %v", iss)
	}
}

func TestValidate_MalformedAndDuplicate(t *testing.T) {
	h := newHandler(t)

	iss := issuesOf(t, serve(h, `{"name":`))
	if len(iss) != 1 || iss[0].Code != fluentcheck.CodeParseError {
		t.Fatalf("expected parse_error, got %v", iss)
	}

	iss = issuesOf(t, serve(h, `{"name":"a","name":"b"}`))
	if len(iss) != 1 || iss[0].Code != fluentcheck.CodeDuplicateKey || iss[0].Path != "/name" {
		t.Fatalf("expected duplicate_key at /name, got %v", iss)
	}
}

func TestDecode_AllowDuplicatesAndLimit(t *testing.T) {
	c := f.Object().Field("name", f.String()).MustCompile()

	opt := middleware.Options{MaxBodyBytes: 64}
	if _, iss := middleware.Decode(c, strings.NewReader(`{"name":"a","name":"b"}`), opt); iss != nil {
		t.Fatalf("duplicates should pass when not rejected: %v", iss)
	}
	big := `{"name":"` + strings.Repeat("x", 100) + `"}`
	if _, iss := middleware.Decode(c, strings.NewReader(big), opt); len(iss) != 1 || iss[0].Code != fluentcheck.CodeParseError {
		t.Fatalf("expected size limit parse_error, got %v", iss)
	}
}
