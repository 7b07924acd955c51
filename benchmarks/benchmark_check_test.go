package benchmarks

import (
	"bytes"
	"strconv"
	"testing"

	f "github.com/reoring/fluentcheck/fluent"
	"github.com/reoring/fluentcheck/source"
)

// ---- Helpers ----

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func smallUserSchema() *f.ObjectBuilder {
	return f.Object().
		Field("id", f.String().NonEmpty()).
		Field("name", f.Optional(f.String())).
		Strict()
}

func smallUserDoc(tb testing.TB) any {
	tb.Helper()
	v, err := source.JSON([]byte(`{"id":"u_1","name":"alice"}`))
	if err != nil {
		tb.Fatalf("decode: %v", err)
	}
	return v
}

// generateHugeJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true},...]
func generateHugeJSONArray(numObjects int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * 64)
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"id":"obj_` + strconv.Itoa(i) + `","name":"n` + strconv.Itoa(i) + `","age":` + strconv.Itoa(i%100) + `,"active":true}`)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// ---- Benchmarks ----

func BenchmarkCheck_SmallObject(b *testing.B) {
	c := smallUserSchema().MustCompile()
	doc := smallUserDoc(b)
	b.ReportAllocs()
	for b.Loop() {
		if !c.Check(doc) {
			b.Fatal("unexpected rejection")
		}
	}
}

func BenchmarkErrors_SmallObject_Invalid(b *testing.B) {
	c := smallUserSchema().MustCompile()
	doc := map[string]any{"id": "", "zzz": 1}
	b.ReportAllocs()
	for b.Loop() {
		n := 0
		for range c.Errors(doc) {
			n++
		}
		if n == 0 {
			b.Fatal("expected issues")
		}
	}
}

func BenchmarkParse_ToStruct(b *testing.B) {
	c := f.MustCompileAs[user](smallUserSchema())
	doc := smallUserDoc(b)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := c.Parse(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheck_StructProjection(b *testing.B) {
	c := smallUserSchema().MustCompile()
	u := user{ID: "u_1", Name: "alice"}
	b.ReportAllocs()
	for b.Loop() {
		if !c.Check(u) {
			b.Fatal("unexpected rejection")
		}
	}
}

func BenchmarkCheck_HugeArray(b *testing.B) {
	item := f.Object().
		Field("id", f.String()).
		Field("name", f.String()).
		Field("age", f.Integer().NonNegative()).
		Field("active", f.Boolean())
	c := f.Array(item).MustCompile()
	for _, n := range []int{100, 10000} {
		doc, err := source.JSON(generateHugeJSONArray(n))
		if err != nil {
			b.Fatalf("decode: %v", err)
		}
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if !c.Check(doc) {
					b.Fatal("unexpected rejection")
				}
			}
		})
	}
}

func BenchmarkDuplicateKeys(b *testing.B) {
	data := generateHugeJSONArray(1000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		if iss := source.DuplicateKeys(data); len(iss) != 0 {
			b.Fatal(iss)
		}
	}
}
