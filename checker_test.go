package fluentcheck_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/reoring/fluentcheck"
	f "github.com/reoring/fluentcheck/fluent"
	js "github.com/reoring/fluentcheck/jsonschema"
)

func userSchema() *f.ObjectBuilder {
	return f.Object().
		Field("name", f.String()).
		Field("age", f.Optional(f.Integer()))
}

func collect(c fluentcheck.Diagnoser, v any) []fluentcheck.Issue {
	var out []fluentcheck.Issue
	for it := range c.Errors(v) {
		out = append(out, it)
	}
	return out
}

func TestCheck_ObjectWithOptionalField(t *testing.T) {
	c := userSchema().MustCompile()

	if !c.Check(map[string]any{"name": "a"}) {
		t.Fatalf("expected optional age to be omittable")
	}
	if !c.Check(map[string]any{"name": "a", "age": 3}) {
		t.Fatalf("expected valid object with age")
	}
	if c.Check(map[string]any{"name": 1}) {
		t.Fatalf("expected name of wrong type to fail")
	}
	if c.Check(map[string]any{"age": 3}) {
		t.Fatalf("expected missing name to fail")
	}
	if c.Check(map[string]any{"name": "a", "age": 1.5}) {
		t.Fatalf("expected non-integer age to fail")
	}
}

func TestErrors_ReportPathAndCode(t *testing.T) {
	c := userSchema().MustCompile()

	iss := collect(c, map[string]any{"name": 1})
	if len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", iss)
	}
	if iss[0].Path != "/name" || iss[0].Code != fluentcheck.CodeInvalidType {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if iss[0].Value != 1 {
		t.Fatalf("expected offending value 1, got %#v", iss[0].Value)
	}

	iss = collect(c, map[string]any{})
	if len(iss) != 1 || iss[0].Code != fluentcheck.CodeRequired || iss[0].Path != "/" {
		t.Fatalf("expected required at root, got %v", iss)
	}

	if iss := collect(c, map[string]any{"name": "ok"}); len(iss) != 0 {
		t.Fatalf("expected no issues, got %v", iss)
	}
}

func TestErrors_Codes(t *testing.T) {
	cases := []struct {
		name  string
		b     f.Builder
		input any
		code  string
	}{
		{"unknown key", f.Object().Field("a", f.String()).Strict(), map[string]any{"a": "x", "b": 1}, fluentcheck.CodeUnknownKey},
		{"too short", f.String().MinLength(3), "ab", fluentcheck.CodeTooShort},
		{"too long", f.Array(f.Integer()).MaxItems(1), []any{1, 2}, fluentcheck.CodeTooLong},
		{"too small", f.Number().Min(10), 3, fluentcheck.CodeTooSmall},
		{"too big", f.Integer().LessThan(10), 10, fluentcheck.CodeTooBig},
		{"pattern", f.String().Pattern("^a+$"), "b", fluentcheck.CodePattern},
		{"enum", f.Enum("x", "y"), "z", fluentcheck.CodeInvalidEnum},
		{"literal", f.Literal("x"), "y", fluentcheck.CodeInvalidLiteral},
		{"format", f.String().Email(), "nope", fluentcheck.CodeInvalidFormat},
		{"union", f.Union(f.String(), f.Integer()), true, fluentcheck.CodeInvalidUnion},
		{"multiple of", f.Integer().MultipleOf(3), 4, fluentcheck.CodeNotMultipleOf},
		{"unique", f.Array(f.Integer()).Unique(), []any{1, 1}, fluentcheck.CodeNotUnique},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := fluentcheck.Compile[any](tc.b.Schema())
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			iss := collect(c, tc.input)
			if len(iss) == 0 {
				t.Fatalf("expected an issue for %#v", tc.input)
			}
			if iss[0].Code != tc.code {
				t.Fatalf("expected %s, got %+v", tc.code, iss)
			}
		})
	}
}

func TestErrors_RestartableAndStoppable(t *testing.T) {
	c := f.Object().
		Field("a", f.String()).
		Field("b", f.String()).
		MustCompile()
	seq := c.Errors(map[string]any{"a": 1, "b": 2})

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 2 || second != first {
		t.Fatalf("expected 2 issues on each pass, got %d and %d", first, second)
	}

	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected early stop after one issue, got %d", n)
	}
}

func TestParse_ReturnsSameValue(t *testing.T) {
	c := userSchema().MustCompile()
	in := map[string]any{"name": "a"}
	out, err := c.Parse(in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok || reflect.ValueOf(m).Pointer() != reflect.ValueOf(in).Pointer() {
		t.Fatalf("expected the input map back, got %#v", out)
	}
}

func TestParse_Transform(t *testing.T) {
	s := f.Object().Field("id", f.Integer())

	calls := 0
	c := f.MustCompileTransform(s, func(m map[string]any) any {
		calls++
		return m["id"]
	})
	got, err := c.Parse(map[string]any{"id": 5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != 5 || calls != 1 {
		t.Fatalf("expected 5 after one call, got %#v after %d", got, calls)
	}

	_, err = c.Parse(map[string]any{"id": "x"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if calls != 1 {
		t.Fatalf("transform must not run on rejected input")
	}
}

func TestParse_TransformFromStruct(t *testing.T) {
	type ref struct {
		ID int `json:"id"`
	}
	c := f.MustCompileTransform(f.Object().Field("id", f.Integer()), func(r ref) int { return r.ID })

	got, err := c.Parse(map[string]any{"id": 5})
	if err != nil || got != 5 {
		t.Fatalf("from map: got %d, %v", got, err)
	}
	got, err = c.Parse(ref{ID: 7})
	if err != nil || got != 7 {
		t.Fatalf("from struct: got %d, %v", got, err)
	}
}

func TestParse_Rejected(t *testing.T) {
	c := userSchema().MustCompile()
	_, err := c.Parse("not-an-object")
	ve, ok := fluentcheck.AsValidationError(err)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Value != "not-an-object" {
		t.Fatalf("expected rejected value kept, got %#v", ve.Value)
	}
	iss := ve.Issues()
	if len(iss) != 1 || iss[0].Code != fluentcheck.CodeInvalidType {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestCheck_StructValue(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Age  *int   `json:"age,omitempty"`
	}
	c := userSchema().MustCompile()
	if !c.Check(user{Name: "a"}) {
		t.Fatalf("expected struct to validate through its JSON form")
	}

	age := 3
	typed := f.MustCompileAs[user](userSchema())
	got, err := typed.Parse(map[string]any{"name": "b", "age": age})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "b" || got.Age == nil || *got.Age != 3 {
		t.Fatalf("unexpected conversion: %+v", got)
	}
}

func TestCheck_Concurrent(t *testing.T) {
	c := userSchema().MustCompile()
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			good := map[string]any{"name": "a", "age": i}
			bad := map[string]any{"name": i}
			if !c.Check(good) || c.Check(bad) {
				errs <- "unexpected result"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestCompile_Errors(t *testing.T) {
	if _, err := f.String().Pattern("(").Compile(); err == nil {
		t.Fatalf("expected invalid pattern to fail compilation")
	}
	if _, err := fluentcheck.Compile[any](nil); !errors.Is(err, fluentcheck.ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
	if _, err := fluentcheck.CompileTransform[any, any](f.String().Schema(), nil); err == nil {
		t.Fatalf("expected nil transform to be rejected")
	}
}

func TestCompile_FormatAssertionToggle(t *testing.T) {
	b := f.String().Email()
	if b.MustCompile().Check("nope") {
		t.Fatalf("format is asserted by default")
	}
	if !b.MustCompile(fluentcheck.WithFormatAssertion(false)).Check("nope") {
		t.Fatalf("expected format to be annotation only")
	}
	c := b.MustCompile(fluentcheck.WithDraft(fluentcheck.Draft2019), fluentcheck.WithFormatAssertion(false))
	if !c.Check("nope") {
		t.Fatalf("expected format to be annotation only under 2019-09")
	}
	if b.Schema().Dialect != "" {
		t.Fatalf("compile modified the schema: %q", b.Schema().Dialect)
	}

	mail := f.Object().Field("to", f.String().Email()).ID("Mail")
	list := f.Array(f.Ref("Mail"))
	bad := []any{map[string]any{"to": "nope"}}
	if !list.MustCompile(f.WithReferences(mail), fluentcheck.WithFormatAssertion(false)).Check(bad) {
		t.Fatalf("expected referenced format to be annotation only")
	}
	if list.MustCompile(f.WithReferences(mail)).Check(bad) {
		t.Fatalf("expected referenced format to be asserted by default")
	}
}

func TestCompile_WithFormat(t *testing.T) {
	even := func(v any) bool {
		s, ok := v.(string)
		return !ok || len(s)%2 == 0
	}
	b := f.String().Format("even-length")
	c := b.MustCompile(fluentcheck.WithFormat("even-length", even))
	if !c.Check("ab") || c.Check("abc") {
		t.Fatalf("custom format not applied")
	}
	if !b.MustCompile().Check("abc") {
		t.Fatalf("unknown format should not reject")
	}
	if !b.MustCompile(fluentcheck.WithFormat("even-length", even), fluentcheck.WithFormatAssertion(false)).Check("abc") {
		t.Fatalf("custom format should follow format assertion")
	}
}

func TestCompile_References(t *testing.T) {
	user := userSchema().ID("User")
	list := f.Array(f.Ref("User"))

	if _, err := list.Compile(); err == nil {
		t.Fatalf("expected unresolved reference to fail")
	}
	c, err := list.Compile(f.WithReferences(user))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !c.Check([]any{map[string]any{"name": "a"}}) {
		t.Fatalf("expected referenced schema to accept")
	}
	if c.Check([]any{map[string]any{"name": 1}}) {
		t.Fatalf("expected referenced schema to reject")
	}
	if _, err := list.Compile(fluentcheck.WithReferences(f.String().Schema())); err == nil {
		t.Fatalf("expected reference without $id to be rejected")
	}
}

func TestCompile_Recursive(t *testing.T) {
	tree := f.Recursive(func(this *f.ThisBuilder) f.Builder {
		return f.Object().
			Field("id", f.String()).
			Field("children", f.Optional(f.Array(this)))
	}).ID("Node")
	c := f.Object().Field("root", tree).MustCompile()

	ok := map[string]any{"root": map[string]any{
		"id": "a",
		"children": []any{
			map[string]any{"id": "b"},
			map[string]any{"id": "c", "children": []any{}},
		},
	}}
	if !c.Check(ok) {
		t.Fatalf("expected nested tree to validate: %v", collect(c, ok))
	}
	bad := map[string]any{"root": map[string]any{
		"id":       "a",
		"children": []any{map[string]any{"id": 2}},
	}}
	iss := collect(c, bad)
	if len(iss) != 1 || iss[0].Path != "/root/children/0/id" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestParseDraft(t *testing.T) {
	for in, want := range map[string]fluentcheck.Draft{
		"":             fluentcheck.Draft2020,
		"2020-12":      fluentcheck.Draft2020,
		"draft2019-09": fluentcheck.Draft2019,
		"draft-07":     fluentcheck.Draft7,
		"7":            fluentcheck.Draft7,
	} {
		got, err := fluentcheck.ParseDraft(in)
		if err != nil || got != want {
			t.Fatalf("ParseDraft(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := fluentcheck.ParseDraft("draft3"); err == nil {
		t.Fatalf("expected unknown draft error")
	}
}

func TestCompile_ParsedNullConst(t *testing.T) {
	s, err := js.Parse([]byte(`{"const":null}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := fluentcheck.Compile[any](s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !c.Check(nil) || c.Check(42) {
		t.Fatalf("const null should accept only null")
	}
}

func TestCheck_RecordKeyConstraints(t *testing.T) {
	c := f.Record(f.String().MinLength(2), f.Integer()).MustCompile()
	if !c.Check(map[string]any{"ab": 1}) || c.Check(map[string]any{"a": 1}) {
		t.Fatalf("key minLength not enforced")
	}

	mixed := f.Record(f.Union(f.Literal("x"), f.Integer()), f.Boolean()).MustCompile()
	if !mixed.Check(map[string]any{"x": true, "12": false}) {
		t.Fatalf("expected literal and numeric keys to pass")
	}
	if mixed.Check(map[string]any{"y": true}) {
		t.Fatalf("expected other keys to fail")
	}
}
