// Package docload parses parameter documents (.hcl files) and translates
// them into the format-agnostic model consumed by the app: pre-declared
// leaf parameters, formulas, and sections.
package docload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/parametry/internal/ctxlog"
	"github.com/vk/parametry/internal/fsutil"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/schema"
	"github.com/vk/parametry/internal/xref"
	"github.com/zclconf/go-cty/cty"
)

// ParamDecl is a leaf parameter declared directly in a document rather than
// produced by a computation module.
type ParamDecl struct {
	Path   param.Path
	Value  cty.Value
	Status param.Status
	Units  string
	Source string
}

// Model is the merged content of all loaded documents, preserving file
// order within each kind.
type Model struct {
	Params   []*ParamDecl
	Formulas []*xref.Formula
	Sections []*xref.Section
}

// Loader reads parameter documents from disk.
type Loader struct{}

// NewLoader creates a new document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers all .hcl files under the given paths, parses them, and
// merges their blocks into a single model. Parse and translation errors are
// fatal and carry the offending file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Document loader started.", "path_count", len(paths))

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to discover documents under %s: %w", p, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered document files.", "count", len(files))

	model := &Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse document %s: %w", file, diags)
		}

		var doc schema.Document
		diags = gohcl.DecodeBody(hclFile.Body, nil, &doc)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode document %s: %w", file, diags)
		}

		for _, p := range doc.Params {
			decl, err := translateParam(p)
			if err != nil {
				return nil, fmt.Errorf("in document %s: %w", file, err)
			}
			model.Params = append(model.Params, decl)
		}
		for _, f := range doc.Formulas {
			formula, err := translateFormula(f)
			if err != nil {
				return nil, fmt.Errorf("in document %s: %w", file, err)
			}
			model.Formulas = append(model.Formulas, formula)
		}
		for _, s := range doc.Sections {
			section, err := translateSection(s)
			if err != nil {
				return nil, fmt.Errorf("in document %s: %w", file, err)
			}
			model.Sections = append(model.Sections, section)
		}
	}

	logger.Debug("Document loading complete.",
		"params", len(model.Params), "formulas", len(model.Formulas), "sections", len(model.Sections))
	return model, nil
}
