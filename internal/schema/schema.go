// Package schema defines the raw HCL block structures for parameter
// documents. These structs mirror the on-disk syntax exactly; the docload
// package translates them into the format-agnostic model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Param represents a `param` block: a pre-declared leaf parameter with a
// literal value. The single label is the full dot-separated path.
type Param struct {
	Path   string         `hcl:"path,label"`
	Value  hcl.Expression `hcl:"value"`
	Status string         `hcl:"status"`
	Units  string         `hcl:"units,optional"`
	Source string         `hcl:"source,optional"`
}

// Formula represents a `formula` block: a documented relationship between
// parameters, validated but never evaluated by the core.
type Formula struct {
	ID          string   `hcl:"id,label"`
	Title       string   `hcl:"title,optional"`
	Inputs      []string `hcl:"inputs,optional"`
	Outputs     []string `hcl:"outputs,optional"`
	DerivedFrom []string `hcl:"derived_from,optional"`
}

// Section represents a `section` block: a document unit citing formulas and
// parameters.
type Section struct {
	ID       string   `hcl:"id,label"`
	Title    string   `hcl:"title,optional"`
	Formulas []string `hcl:"formulas,optional"`
	Params   []string `hcl:"params,optional"`
}

// Document represents the top-level structure of one parameter document
// file. Any combination of blocks may appear in any file.
type Document struct {
	Params   []*Param   `hcl:"param,block"`
	Formulas []*Formula `hcl:"formula,block"`
	Sections []*Section `hcl:"section,block"`
	Body     hcl.Body   `hcl:",remain"`
}
