package codec

import (
	"time"

	"github.com/reoring/fluentcheck"
	f "github.com/reoring/fluentcheck/fluent"
)

// FormatDuration is the format keyword value for Go duration strings.
const FormatDuration = "go-duration"

// Duration returns a checker that accepts Go duration strings such as "1h30m"
// and parses them into time.Duration. Strings time.ParseDuration rejects,
// including out of range values, fail the check. The format is asserted
// regardless of opts.
func Duration(opts ...fluentcheck.CompileOption) (*fluentcheck.Checker[string, time.Duration], error) {
	opts = append(opts[:len(opts):len(opts)],
		fluentcheck.WithFormat(FormatDuration, isDuration),
		fluentcheck.WithFormatAssertion(true),
	)
	return f.CompileTransform(f.String().Format(FormatDuration), func(s string) time.Duration {
		d, _ := time.ParseDuration(s)
		return d
	}, opts...)
}

func isDuration(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.ParseDuration(s)
	return err == nil
}
