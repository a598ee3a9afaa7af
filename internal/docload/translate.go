// This file translates raw HCL schema structs into the format-agnostic
// model types.

package docload

import (
	"fmt"

	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/schema"
	"github.com/vk/parametry/internal/xref"
)

// translateParam evaluates the literal value expression and validates path
// and status. Document-declared parameters are leaves, so only terminal
// statuses and Fitted are meaningful; a Derived claim here would be an
// undocumented leaf by definition, which the status check reports later.
func translateParam(p *schema.Param) (*ParamDecl, error) {
	path, err := param.ParsePath(p.Path)
	if err != nil {
		return nil, fmt.Errorf("param %q: %w", p.Path, err)
	}

	status, err := param.ParseStatus(p.Status)
	if err != nil {
		return nil, fmt.Errorf("param %q: %w", p.Path, err)
	}

	// Document values are literals; there is no evaluation context.
	val, diags := p.Value.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("param %q: invalid value expression: %w", p.Path, diags)
	}
	if val.IsNull() {
		return nil, fmt.Errorf("param %q: value must not be null", p.Path)
	}

	return &ParamDecl{
		Path:   path,
		Value:  val,
		Status: status,
		Units:  p.Units,
		Source: p.Source,
	}, nil
}

func translateFormula(f *schema.Formula) (*xref.Formula, error) {
	inputs, err := param.ParsePaths(f.Inputs)
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", f.ID, err)
	}
	outputs, err := param.ParsePaths(f.Outputs)
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", f.ID, err)
	}
	return &xref.Formula{
		ID:           f.ID,
		Title:        f.Title,
		InputParams:  inputs,
		OutputParams: outputs,
		DerivedFrom:  f.DerivedFrom,
	}, nil
}

func translateSection(s *schema.Section) (*xref.Section, error) {
	params, err := param.ParsePaths(s.Params)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.ID, err)
	}
	return &xref.Section{
		ID:          s.ID,
		Title:       s.Title,
		FormulaRefs: s.Formulas,
		ParamRefs:   params,
	}, nil
}
