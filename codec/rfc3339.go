// Package codec provides ready-made checkers that convert validated wire
// values into Go domain types.
package codec

import (
	"time"

	"github.com/reoring/fluentcheck"
	f "github.com/reoring/fluentcheck/fluent"
)

// TimeRFC3339 returns a checker that accepts RFC 3339 date-time strings and
// parses them into time.Time. The date-time format is asserted regardless of
// opts.
func TimeRFC3339(opts ...fluentcheck.CompileOption) (*fluentcheck.Checker[string, time.Time], error) {
	opts = append(opts[:len(opts):len(opts)], fluentcheck.WithFormatAssertion(true))
	return f.CompileTransform(f.String().DateTime(), parseRFC3339, opts...)
}

// FormatRFC3339 renders t in the canonical wire form accepted by TimeRFC3339.
func FormatRFC3339(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}

// parseRFC3339 runs after the date-time format check. Values the format allows
// but time.Parse does not (leap seconds) map to the zero time.
func parseRFC3339(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2
		}
		return time.Time{}
	}
	return t
}
