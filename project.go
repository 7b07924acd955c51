package fluentcheck

import (
	"bytes"

	"github.com/goccy/go-json"
)

// project converts an arbitrary Go value into its JSON-native form
// (map[string]any, []any, json.Number, string, bool, nil).
func project(v any) (any, error) {
	var out any
	if err := reproject(v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// reproject encodes v as JSON and decodes it into dst, keeping numbers exact.
func reproject(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(dst)
}
