// Package xref holds the documentation cross-reference layer: formulas and
// sections that cite registry parameters and each other by name, the index
// that collects them, and the validator that checks every reference
// resolves.
package xref

import (
	"fmt"

	"github.com/vk/parametry/internal/param"
)

// Formula is a named, documented relationship. The core never evaluates it;
// it only validates that everything the formula cites exists.
type Formula struct {
	ID    string
	Title string
	// InputParams are the registry paths the formula reads.
	InputParams []param.Path
	// OutputParams are the registry paths the formula is said to compute.
	OutputParams []param.Path
	// DerivedFrom names the formulas this one logically builds on.
	DerivedFrom []string
}

// Section is a document unit citing formulas and parameters for exposition.
type Section struct {
	ID          string
	Title       string
	FormulaRefs []string
	ParamRefs   []param.Path
}

// Index is the cross-reference index over all formulas and sections. It is
// built once, after the scheduler finishes and all entries exist.
type Index struct {
	formulas     map[string]*Formula
	sections     map[string]*Section
	formulaOrder []string
	sectionOrder []string
}

// BuildIndex collects formulas and sections into an index, rejecting
// duplicate IDs within each kind.
func BuildIndex(formulas []*Formula, sections []*Section) (*Index, error) {
	idx := &Index{
		formulas: make(map[string]*Formula, len(formulas)),
		sections: make(map[string]*Section, len(sections)),
	}
	for _, f := range formulas {
		if _, exists := idx.formulas[f.ID]; exists {
			return nil, fmt.Errorf("formula %q is defined more than once", f.ID)
		}
		idx.formulas[f.ID] = f
		idx.formulaOrder = append(idx.formulaOrder, f.ID)
	}
	for _, s := range sections {
		if _, exists := idx.sections[s.ID]; exists {
			return nil, fmt.Errorf("section %q is defined more than once", s.ID)
		}
		idx.sections[s.ID] = s
		idx.sectionOrder = append(idx.sectionOrder, s.ID)
	}
	return idx, nil
}

// Formula returns a formula by ID, or nil.
func (idx *Index) Formula(id string) *Formula {
	return idx.formulas[id]
}

// Section returns a section by ID, or nil.
func (idx *Index) Section(id string) *Section {
	return idx.sections[id]
}

// Formulas returns all formulas in definition order.
func (idx *Index) Formulas() []*Formula {
	out := make([]*Formula, 0, len(idx.formulaOrder))
	for _, id := range idx.formulaOrder {
		out = append(out, idx.formulas[id])
	}
	return out
}

// Sections returns all sections in definition order.
func (idx *Index) Sections() []*Section {
	out := make([]*Section, 0, len(idx.sectionOrder))
	for _, id := range idx.sectionOrder {
		out = append(out, idx.sections[id])
	}
	return out
}
