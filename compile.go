package fluentcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	sjs "github.com/santhosh-tekuri/jsonschema/v5"

	js "github.com/reoring/fluentcheck/jsonschema"
)

// Resource locations used when handing schemas to the compiler. Relative $id
// and $ref values resolve against baseURL.
const (
	baseURL = "mem://fluentcheck/"
	rootURL = baseURL + "schema.json"
)

// ErrNilSchema is returned when compiling a nil schema handle.
var ErrNilSchema = errors.New("fluentcheck: nil schema")

// Draft selects the JSON Schema dialect used to interpret keywords.
type Draft int

const (
	Draft2020 Draft = iota
	Draft2019
	Draft7
)

// dialect is the $schema URL of d. Resources are registered with it so the
// compiler loads the draft's metaschema and honors WithFormatAssertion.
func (d Draft) dialect() string {
	switch d {
	case Draft7:
		return "http://json-schema.org/draft-07/schema#"
	case Draft2019:
		return "https://json-schema.org/draft/2019-09/schema"
	default:
		return "https://json-schema.org/draft/2020-12/schema"
	}
}

func (d Draft) compilerDraft() *sjs.Draft {
	switch d {
	case Draft7:
		return sjs.Draft7
	case Draft2019:
		return sjs.Draft2019
	default:
		return sjs.Draft2020
	}
}

// ParseDraft maps "2020-12", "2019-09" and "7" (with or without a "draft"
// prefix) to a Draft.
func ParseDraft(s string) (Draft, error) {
	switch strings.TrimPrefix(strings.ToLower(s), "draft") {
	case "", "2020-12", "2020":
		return Draft2020, nil
	case "2019-09", "2019":
		return Draft2019, nil
	case "7", "-07", "07":
		return Draft7, nil
	}
	return Draft2020, fmt.Errorf("fluentcheck: unknown draft %q", s)
}

// CompileOption configures Compile.
type CompileOption func(*compileConfig)

type compileConfig struct {
	draft        Draft
	assertFormat bool
	references   []*js.Schema
	formats      map[string]func(any) bool
	logger       *log.Logger
}

func newCompileConfig(opts []CompileOption) compileConfig {
	cfg := compileConfig{draft: Draft2020, assertFormat: true}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}

// WithDraft selects the dialect. Schemas built with the jsonschema package use
// the 2020-12 vocabulary.
func WithDraft(d Draft) CompileOption {
	return func(c *compileConfig) { c.draft = d }
}

// WithFormatAssertion toggles validation of the format keyword (on by default).
// Draft 7 always asserts formats.
func WithFormatAssertion(enabled bool) CompileOption {
	return func(c *compileConfig) { c.assertFormat = enabled }
}

// WithFormat registers a validator for the format keyword value name. It
// replaces a built-in format of the same name and only runs when format
// assertion is enabled. fn receives every instance; it should accept values
// that are not of the type it checks.
func WithFormat(name string, fn func(any) bool) CompileOption {
	return func(c *compileConfig) {
		if c.formats == nil {
			c.formats = make(map[string]func(any) bool)
		}
		c.formats[name] = fn
	}
}

// WithReferences registers schemas that Ref nodes point at. Each must carry an
// $id.
func WithReferences(schemas ...*js.Schema) CompileOption {
	return func(c *compileConfig) { c.references = append(c.references, schemas...) }
}

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(l *log.Logger) CompileOption {
	return func(c *compileConfig) { c.logger = l }
}

func compileSchema(s *js.Schema, cfg compileConfig) (*sjs.Schema, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	c := sjs.NewCompiler()
	c.Draft = cfg.draft.compilerDraft()
	c.AssertFormat = cfg.assertFormat
	for name, fn := range cfg.formats {
		c.Formats[name] = fn
	}
	for _, ref := range cfg.references {
		if ref == nil || ref.ID == "" {
			return nil, errors.New("fluentcheck: reference schema has no $id")
		}
		url := resolveID(ref.ID)
		if err := addResource(c, url, ref, cfg.draft); err != nil {
			return nil, err
		}
		cfg.logger.Debug("registered reference", "id", ref.ID, "url", url)
	}
	if err := addResource(c, rootURL, s, cfg.draft); err != nil {
		return nil, err
	}
	v, err := c.Compile(rootURL)
	if err != nil {
		return nil, fmt.Errorf("fluentcheck: compile schema: %w", err)
	}
	cfg.logger.Debug("compiled schema", "kind", s.Kind, "id", s.ID, "references", len(cfg.references))
	return v, nil
}

// addResource registers s under url. A schema without $schema is registered
// as a copy carrying the dialect of d; s itself is not modified.
func addResource(c *sjs.Compiler, url string, s *js.Schema, d Draft) error {
	if s.Dialect == "" && s.Bool == nil {
		cp := *s
		cp.Dialect = d.dialect()
		s = &cp
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("fluentcheck: encode schema %s: %w", url, err)
	}
	if err := c.AddResource(url, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("fluentcheck: add schema %s: %w", url, err)
	}
	return nil
}

func resolveID(id string) string {
	if strings.Contains(id, "://") || strings.HasPrefix(id, "urn:") {
		return id
	}
	return baseURL + strings.TrimPrefix(id, "/")
}
