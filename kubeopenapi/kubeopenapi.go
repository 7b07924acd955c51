// Package kubeopenapi imports the structural OpenAPI v3 schemas embedded in
// Kubernetes CustomResourceDefinitions as jsonschema.Schema values, so custom
// resources can be checked with fluentcheck.
package kubeopenapi

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-json"

	js "github.com/reoring/fluentcheck/jsonschema"
)

// Import converts an openAPIV3Schema into a JSON Schema. The input can be a
// decoded map[string]any, raw JSON bytes, a whole CRD document, or the
// openAPIV3Schema node itself.
//
// Kubernetes extensions are rewritten to plain keywords:
//   - nullable: true admits null
//   - x-kubernetes-int-or-string admits integers and strings
//   - x-kubernetes-list-type: set requires unique items
//   - x-kubernetes-embedded-resource requires apiVersion, kind and metadata
//     when Options.EnableEmbeddedChecks is set
func Import(schema any, opts Options) (*js.Schema, Diag, error) {
	d := &simpleDiag{}
	if schema == nil {
		return nil, d, errors.New("kubeopenapi: nil schema")
	}
	var root map[string]any
	switch t := schema.(type) {
	case []byte:
		if err := json.Unmarshal(t, &root); err != nil {
			return nil, d, fmt.Errorf("kubeopenapi: invalid JSON: %w", err)
		}
	case map[string]any:
		root = t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, d, fmt.Errorf("kubeopenapi: cannot marshal input: %w", err)
		}
		if err := json.Unmarshal(b, &root); err != nil {
			return nil, d, fmt.Errorf("kubeopenapi: invalid marshaled JSON: %w", err)
		}
	}
	if root == nil {
		return nil, d, errors.New("kubeopenapi: schema is not an object")
	}

	// Accept direct schema (openAPIV3Schema) or unwrap CRD root (spec.versions[].schema.openAPIV3Schema)
	if oas, ok := root["openAPIV3Schema"].(map[string]any); ok {
		root = oas
	} else if unwrapped := unwrapCRDSchema(root); unwrapped != nil {
		root = unwrapped
	} else if k, _ := root["kind"].(string); k == "CustomResourceDefinition" {
		return nil, d, errors.New("kubeopenapi: CRD has no openAPIV3Schema")
	}

	if t, _ := root["type"].(string); t != "object" && t != "" {
		d.warnf("non-object at root: type=%q", t)
	}

	out := convert(root, "", opts, d)
	b, err := json.Marshal(out)
	if err != nil {
		return nil, d, fmt.Errorf("kubeopenapi: %w", err)
	}
	s, err := js.Parse(b)
	if err != nil {
		return nil, d, fmt.Errorf("kubeopenapi: %w", err)
	}
	return s, d, nil
}

// unwrapCRDSchema tries to extract openAPIV3Schema from a Kubernetes CRD document.
// It looks for spec.versions[].schema.openAPIV3Schema (preferring served=true),
// then falls back to spec.validation.openAPIV3Schema for legacy specs.
func unwrapCRDSchema(root map[string]any) map[string]any {
	spec, ok := root["spec"].(map[string]any)
	if !ok {
		return nil
	}
	if vers, ok := spec["versions"].([]any); ok {
		var firstFound map[string]any
		for _, v := range vers {
			vm, _ := v.(map[string]any)
			if vm == nil {
				continue
			}
			served := true
			if sv, ok := vm["served"].(bool); ok {
				served = sv
			}
			sch, _ := vm["schema"].(map[string]any)
			oas, ok := sch["openAPIV3Schema"].(map[string]any)
			if !ok {
				continue
			}
			if served {
				return oas
			}
			if firstFound == nil {
				firstFound = oas
			}
		}
		if firstFound != nil {
			return firstFound
		}
	}
	// legacy: spec.validation.openAPIV3Schema
	if val, ok := spec["validation"].(map[string]any); ok {
		if oas, ok := val["openAPIV3Schema"].(map[string]any); ok {
			return oas
		}
	}
	return nil
}

// convert returns a rewritten copy of node. The input is not modified.
func convert(node map[string]any, path string, opts Options, d *simpleDiag) map[string]any {
	out := make(map[string]any, len(node))
	for k, v := range node {
		out[k] = v
	}

	for _, kw := range []string{"properties", "patternProperties", "$defs", "definitions"} {
		if pm, ok := node[kw].(map[string]any); ok {
			cp := make(map[string]any, len(pm))
			for name, raw := range pm {
				if sch, ok := raw.(map[string]any); ok {
					cp[name] = convert(sch, path+"/"+kw+"/"+name, opts, d)
					continue
				}
				cp[name] = raw
			}
			out[kw] = cp
		}
	}
	for _, kw := range []string{"additionalProperties", "not", "items"} {
		if sch, ok := node[kw].(map[string]any); ok {
			out[kw] = convert(sch, path+"/"+kw, opts, d)
		}
	}
	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		if list, ok := node[kw].([]any); ok {
			cp := make([]any, len(list))
			for i, raw := range list {
				if sch, ok := raw.(map[string]any); ok {
					cp[i] = convert(sch, fmt.Sprintf("%s/%s/%d", path, kw, i), opts, d)
					continue
				}
				cp[i] = raw
			}
			out[kw] = cp
		}
	}

	if isTrue(node, "x-kubernetes-int-or-string") {
		delete(out, "type")
		intOrString := []any{map[string]any{"type": "integer"}, map[string]any{"type": "string"}}
		if prev, ok := out["anyOf"]; ok {
			out["allOf"] = append(asList(out["allOf"]), map[string]any{"anyOf": prev})
		}
		out["anyOf"] = intOrString
	}

	switch lt, _ := node["x-kubernetes-list-type"].(string); lt {
	case "set":
		out["uniqueItems"] = true
	case "map":
		d.warnf("%s: x-kubernetes-list-map-keys uniqueness is not enforced", pointerOrRoot(path))
	}

	if opts.Unknown == UnknownStrict && declaresObject(node) && !isTrue(node, "x-kubernetes-preserve-unknown-fields") {
		if _, ok := node["properties"]; ok {
			if _, set := node["additionalProperties"]; !set {
				out["additionalProperties"] = false
			}
		}
	}

	if opts.EnableEmbeddedChecks && isTrue(node, "x-kubernetes-embedded-resource") {
		requireEmbedded(out)
	}

	if isTrue(node, "nullable") {
		delete(out, "nullable")
		return admitNull(out)
	}
	delete(out, "nullable")
	return out
}

// requireEmbedded makes apiVersion, kind and metadata required on out.
func requireEmbedded(out map[string]any) {
	props, _ := out["properties"].(map[string]any)
	cp := make(map[string]any, len(props)+3)
	for k, v := range props {
		cp[k] = v
	}
	defaults := map[string]string{"apiVersion": "string", "kind": "string", "metadata": "object"}
	req := asList(out["required"])
	for _, name := range []string{"apiVersion", "kind", "metadata"} {
		if _, ok := cp[name]; !ok {
			cp[name] = map[string]any{"type": defaults[name]}
		}
		if !slices.Contains(req, any(name)) {
			req = append(req, name)
		}
	}
	out["properties"] = cp
	out["required"] = req
}

// admitNull widens out so null validates. A single type becomes a type list;
// anything else is wrapped in anyOf.
func admitNull(out map[string]any) map[string]any {
	if enum, ok := out["enum"].([]any); ok && !slices.Contains(enum, nil) {
		out["enum"] = append(slices.Clone(enum), nil)
	}
	if t, ok := out["type"].(string); ok {
		out["type"] = []any{t, "null"}
		return out
	}
	if _, ok := out["type"]; !ok && len(out) > 0 {
		return map[string]any{"anyOf": []any{out, map[string]any{"type": "null"}}}
	}
	return out
}

func declaresObject(node map[string]any) bool {
	t, ok := node["type"].(string)
	return !ok || t == "object"
}

func isTrue(node map[string]any, key string) bool {
	b, ok := node[key].(bool)
	return ok && b
}

func asList(v any) []any {
	list, _ := v.([]any)
	return slices.Clone(list)
}

func pointerOrRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
