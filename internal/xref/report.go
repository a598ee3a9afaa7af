package xref

import (
	"fmt"
	"io"
)

// Kind identifies the class of a validation finding.
type Kind string

const (
	// MissingParamRef is a reference to a registry path that does not exist.
	MissingParamRef Kind = "missing-param-ref"
	// MissingFormulaRef is a reference to a formula ID that does not exist.
	MissingFormulaRef Kind = "missing-formula-ref"
	// FormulaCycle marks a formula whose derived_from closure includes itself.
	FormulaCycle Kind = "formula-cycle"
	// OrphanParam marks a registry entry no formula or section references.
	OrphanParam Kind = "orphan-param"
	// OrphanFormula marks a formula no section references.
	OrphanFormula Kind = "orphan-formula"
)

// Severity classifies a finding as a hard error or an informational warning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation defect: what kind, how severe, which entity
// holds the reference, and what it points at.
type Finding struct {
	Kind     Kind
	Severity Severity
	// Referrer names the entity holding the broken reference, e.g.
	// `formula "mass_scale"`. Empty for orphans.
	Referrer string
	// Ref is the dangling path or ID, or the orphaned entity itself.
	Ref string
}

// Report is the complete outcome of one validation pass. The validator
// never aborts mid-walk; the report enumerates every defect so a human can
// fix them all in one round.
type Report struct {
	// RefsChecked counts every reference the validator resolved.
	RefsChecked int
	Findings    []Finding
}

// add appends a finding.
func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// ErrorCount returns the number of error-severity findings.
func (r *Report) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity findings.
func (r *Report) WarningCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// CountByKind returns how many findings of the given kind were collected.
func (r *Report) CountByKind(kind Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Write renders the human-readable report.
func (r *Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "checked %d references: %d errors, %d warnings\n",
		r.RefsChecked, r.ErrorCount(), r.WarningCount()); err != nil {
		return err
	}
	for _, f := range r.Findings {
		var err error
		if f.Referrer != "" {
			_, err = fmt.Fprintf(w, "  %s: %s: %s -> %q\n", f.Severity, f.Kind, f.Referrer, f.Ref)
		} else {
			_, err = fmt.Fprintf(w, "  %s: %s: %q\n", f.Severity, f.Kind, f.Ref)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
