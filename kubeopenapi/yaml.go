package kubeopenapi

import (
	"errors"

	js "github.com/reoring/fluentcheck/jsonschema"
	"github.com/reoring/fluentcheck/source"
)

// ErrCRDNotFound is returned when no CRD in a bundle matches the selector.
var ErrCRDNotFound = errors.New("kubeopenapi: CRD not found in YAML bundle")

// ImportYAMLForCRDKind scans a multi-document YAML (e.g., CRD bundle) and imports
// the first CustomResourceDefinition matching the given spec.names.kind.
func ImportYAMLForCRDKind(data []byte, kind string, opts Options) (*js.Schema, Diag, error) {
	return importYAML(data, opts, func(crd map[string]any) bool {
		spec, _ := crd["spec"].(map[string]any)
		names, _ := spec["names"].(map[string]any)
		k, _ := names["kind"].(string)
		return k == kind
	})
}

// ImportYAMLForCRDName scans a multi-document YAML and imports the CRD
// with given metadata.name.
func ImportYAMLForCRDName(data []byte, name string, opts Options) (*js.Schema, Diag, error) {
	return importYAML(data, opts, func(crd map[string]any) bool {
		meta, _ := crd["metadata"].(map[string]any)
		n, _ := meta["name"].(string)
		return n == name
	})
}

func importYAML(data []byte, opts Options, match func(map[string]any) bool) (*js.Schema, Diag, error) {
	docs, err := source.YAMLDocuments(data)
	if err != nil {
		return nil, &simpleDiag{}, err
	}
	for _, doc := range docs {
		m, _ := doc.(map[string]any)
		if m == nil {
			continue
		}
		if k, _ := m["kind"].(string); k != "CustomResourceDefinition" {
			continue
		}
		if match(m) {
			return Import(m, opts)
		}
	}
	return nil, &simpleDiag{}, ErrCRDNotFound
}
