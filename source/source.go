// Package source decodes JSON, YAML and TOML documents into the plain values
// (map[string]any, []any, string, bool, numbers, nil) a checker validates.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by File for unknown extensions.
var ErrUnsupportedFormat = errors.New("source: unsupported format")

// JSON decodes a single JSON document. Numbers are kept as json.Number.
func JSON(data []byte) (any, error) { return JSONReader(bytes.NewReader(data)) }

// JSONReader decodes a single JSON document from r. Trailing data is an error.
func JSONReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: decode json: trailing data after document")
	}
	return v, nil
}

// YAML decodes the first document of a YAML stream.
func YAML(data []byte) (any, error) {
	docs, err := YAMLDocuments(data)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

// YAMLDocuments decodes every document of a YAML stream.
func YAMLDocuments(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("source: decode yaml: %w", err)
		}
		out = append(out, normalize(node))
	}
	return out, nil
}

// TOML decodes a TOML document. Date and time values become strings.
func TOML(data []byte) (any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("source: decode toml: %w", err)
	}
	return normalize(m), nil
}

// File decodes the documents in path, choosing the format by extension
// (.json, .yaml/.yml, .toml). JSON and TOML files hold exactly one document.
func File(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		v, err := JSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []any{v}, nil
	case ".yaml", ".yml":
		docs, err := YAMLDocuments(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return docs, nil
	case ".toml":
		v, err := TOML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []any{v}, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// normalize converts decoder output into JSON-shaped values: maps get string
// keys and date/time scalars become strings.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalize(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalize(t[i])
		}
		return arr
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(t)
	default:
		return v
	}
}
