package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/fluentcheck"
	js "github.com/reoring/fluentcheck/jsonschema"
	"github.com/reoring/fluentcheck/kubeopenapi"
	"github.com/reoring/fluentcheck/source"
)

var errValidationFailed = errors.New("validation failed")

type validateOptions struct {
	schema    string
	refs      []string
	quiet     bool
	crdKind   string
	crdStrict bool
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate --schema schema.json FILE...",
		Short: "Check documents against a schema",
		Long: `Compile the schema and check every document in FILE... against it.

Files are decoded by extension (.json, .yaml/.yml, .toml); every document of a
multi-document YAML file is checked. The command exits non-zero when any
document fails.

With --crd-kind the schema file is read as a YAML bundle of Kubernetes
CustomResourceDefinitions and the openAPIV3Schema of the matching kind is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), root, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "schema document (JSON, YAML or TOML)")
	cmd.Flags().StringArrayVar(&opts.refs, "ref", nil, "additional schema with an $id for $ref lookups (repeatable)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print failures only")
	cmd.Flags().StringVar(&opts.crdKind, "crd-kind", "", "import the schema from the CRD with this spec.names.kind")
	cmd.Flags().BoolVar(&opts.crdStrict, "crd-strict", false, "reject fields a CRD schema does not declare")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runValidate(out io.Writer, root *rootOptions, opts *validateOptions, files []string) error {
	cfg, logger := root.cfg, root.logger

	draft, err := fluentcheck.ParseDraft(cfg.Draft)
	if err != nil {
		return err
	}
	var schema *js.Schema
	if opts.crdKind != "" {
		schema, err = loadCRD(opts.schema, opts.crdKind, opts.crdStrict, logger)
	} else {
		schema, err = loadSchema(opts.schema)
	}
	if err != nil {
		return err
	}
	refs := make([]*js.Schema, 0, len(opts.refs))
	for _, p := range opts.refs {
		r, err := loadSchema(p)
		if err != nil {
			return err
		}
		refs = append(refs, r)
	}

	checker, err := fluentcheck.Compile[any](schema,
		fluentcheck.WithDraft(draft),
		fluentcheck.WithFormatAssertion(cfg.AssertFormat),
		fluentcheck.WithReferences(refs...),
		fluentcheck.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	pass := color.New(color.FgGreen).Sprint("PASS")
	fail := color.New(color.FgRed).Sprint("FAIL")
	failed := 0
	for _, file := range files {
		docs, err := loadDocuments(file, cfg.RejectDuplicateKeys)
		if err != nil {
			var iss fluentcheck.Issues
			if errors.As(err, &iss) {
				fmt.Fprintf(out, "%s %s\n", fail, file)
				writeIssues(out, iss)
				failed++
				continue
			}
			return err
		}
		logger.Debug("loaded documents", "file", file, "count", len(docs))
		for i, doc := range docs {
			name := file
			if len(docs) > 1 {
				name = fmt.Sprintf("%s#%d", file, i)
			}
			_, err := checker.Parse(doc)
			if err == nil {
				if !opts.quiet {
					fmt.Fprintf(out, "%s %s\n", pass, name)
				}
				continue
			}
			ve, ok := fluentcheck.AsValidationError(err)
			if !ok {
				return err
			}
			failed++
			fmt.Fprintf(out, "%s %s\n", fail, name)
			if err := ve.WriteDetails(indent(out)); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		logger.Info("validation finished", "failed", failed)
		return fmt.Errorf("%w: %d document(s)", errValidationFailed, failed)
	}
	return nil
}

// loadSchema reads a schema document in any supported format.
func loadSchema(path string) (*js.Schema, error) {
	docs, err := source.File(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("schema: %s: expected one document, found %d", path, len(docs))
	}
	b, err := json.Marshal(docs[0])
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	s, err := js.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return s, nil
}

// loadCRD imports the openAPIV3Schema of kind from a CRD bundle.
func loadCRD(path, kind string, strict bool, logger *log.Logger) (*js.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	opts := kubeopenapi.Options{EnableEmbeddedChecks: true}
	if strict {
		opts.Unknown = kubeopenapi.UnknownStrict
	}
	s, diag, err := kubeopenapi.ImportYAMLForCRDKind(data, kind, opts)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	for _, w := range diag.Warnings() {
		logger.Warn("crd import", "kind", kind, "warning", w)
	}
	return s, nil
}

// loadDocuments decodes file. With rejectDup, duplicate keys in JSON files are
// returned as Issues.
func loadDocuments(file string, rejectDup bool) ([]any, error) {
	if rejectDup && strings.EqualFold(filepath.Ext(file), ".json") {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		if iss := source.DuplicateKeys(data); len(iss) > 0 {
			return nil, iss
		}
	}
	return source.File(file)
}

func writeIssues(w io.Writer, iss fluentcheck.Issues) {
	for _, it := range iss {
		fmt.Fprintf(w, "  [%s] %s\n", it.Path, it.Message)
	}
}

type indentWriter struct{ w io.Writer }

func indent(w io.Writer) io.Writer { return indentWriter{w} }

// Write prefixes p with two spaces. WriteDetails writes whole lines.
func (iw indentWriter) Write(p []byte) (int, error) {
	if _, err := iw.w.Write([]byte("  ")); err != nil {
		return 0, err
	}
	return iw.w.Write(p)
}
