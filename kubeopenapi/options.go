package kubeopenapi

import "fmt"

// UnknownBehavior configures how unknown fields are treated when importing CRD schemas.
type UnknownBehavior int

const (
	// UnknownPrune accepts unknown fields. The API server would drop them.
	UnknownPrune UnknownBehavior = iota
	// UnknownStrict rejects unknown fields on objects that declare properties.
	UnknownStrict
)

// Options controls import behavior for Kubernetes OpenAPI v3 schemas.
type Options struct {
	Unknown UnknownBehavior
	// EnableEmbeddedChecks requires apiVersion, kind and metadata on
	// x-kubernetes-embedded-resource values.
	EnableEmbeddedChecks bool
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
