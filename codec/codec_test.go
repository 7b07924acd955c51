package codec_test

import (
	"testing"
	"time"

	"github.com/reoring/fluentcheck"
	"github.com/reoring/fluentcheck/codec"
	f "github.com/reoring/fluentcheck/fluent"
)

func TestTimeRFC3339_Basic(t *testing.T) {
	c, err := codec.TimeRFC3339()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	in := "2025-01-01T00:00:00Z"
	got, err := c.Parse(in)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if out := codec.FormatRFC3339(got); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}

	offset, err := c.Parse("2025-01-01T09:00:00.5+09:00")
	if err != nil {
		t.Fatalf("parse with offset: %v", err)
	}
	if out := codec.FormatRFC3339(offset); out != "2025-01-01T00:00:00.5Z" {
		t.Fatalf("expected canonical UTC output, got %s", out)
	}
}

func TestTimeRFC3339_Rejects(t *testing.T) {
	c, _ := codec.TimeRFC3339(fluentcheck.WithFormatAssertion(false))
	for _, in := range []any{"2025-13-01", "yesterday", 42} {
		if _, err := c.Parse(in); err == nil {
			t.Fatalf("expected %v to be rejected", in)
		}
	}
}

func TestDuration(t *testing.T) {
	c, err := codec.Duration()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := map[string]time.Duration{
		"0":      0,
		"1h30m":  90 * time.Minute,
		"1.5s":   1500 * time.Millisecond,
		"-250ms": -250 * time.Millisecond,
	}
	for in, want := range cases {
		got, err := c.Parse(in)
		if err != nil || got != want {
			t.Fatalf("Parse(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"", "10", "1x", "00", "9999999999h", "99999999999999999999ns"} {
		if c.Check(in) {
			t.Fatalf("expected %q to be rejected", in)
		}
		if d, err := c.Parse(in); err == nil {
			t.Fatalf("Parse(%q) = %v, want error", in, d)
		}
	}

	lenient, err := codec.Duration(fluentcheck.WithFormatAssertion(false))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if lenient.Check("9999999999h") {
		t.Fatalf("format is asserted regardless of options")
	}
}

func TestIdentity(t *testing.T) {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	c, err := codec.Identity[point](f.Object().Field("x", f.Integer()).Field("y", f.Integer()))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	p, err := c.Parse(point{X: 1, Y: 2})
	if err != nil || p != (point{X: 1, Y: 2}) {
		t.Fatalf("unexpected: %+v, %v", p, err)
	}
	p, err = c.Parse(map[string]any{"x": 3, "y": 4})
	if err != nil || p != (point{X: 3, Y: 4}) {
		t.Fatalf("unexpected: %+v, %v", p, err)
	}
	if _, err := c.Parse(map[string]any{"x": "1"}); err == nil {
		t.Fatalf("expected rejection")
	}
}
