package xref

import (
	"context"
	"fmt"

	"github.com/vk/parametry/internal/ctxlog"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
)

// Options configures a validation pass.
type Options struct {
	// Severity overrides the severity per finding kind. Dangling
	// references default to errors; orphans are always warnings and
	// cannot be promoted.
	Severity map[Kind]Severity
}

// DefaultOptions returns the standard severity assignment: every dangling
// reference is an error, orphans are warnings.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) severityFor(kind Kind) Severity {
	if kind == OrphanParam || kind == OrphanFormula {
		return SeverityWarning
	}
	if s, ok := o.Severity[kind]; ok {
		return s
	}
	return SeverityError
}

// Validate walks the index and the registry and enumerates every dangling
// reference, formula cycle, and orphan into a single report.
func (idx *Index) Validate(ctx context.Context, reg *registry.Registry, opts Options) *Report {
	logger := ctxlog.FromContext(ctx)
	report := &Report{}

	paramRefd := make(map[param.Path]bool)
	formulaRefd := make(map[string]bool)

	checkParam := func(referrer string, p param.Path) {
		report.RefsChecked++
		if reg.Has(p) {
			paramRefd[p] = true
			return
		}
		report.add(Finding{
			Kind:     MissingParamRef,
			Severity: opts.severityFor(MissingParamRef),
			Referrer: referrer,
			Ref:      string(p),
		})
	}
	checkFormula := func(referrer, id string) {
		report.RefsChecked++
		if idx.formulas[id] != nil {
			formulaRefd[id] = true
			return
		}
		report.add(Finding{
			Kind:     MissingFormulaRef,
			Severity: opts.severityFor(MissingFormulaRef),
			Referrer: referrer,
			Ref:      id,
		})
	}

	for _, f := range idx.Formulas() {
		referrer := fmt.Sprintf("formula %q", f.ID)
		for _, p := range f.InputParams {
			checkParam(referrer, p)
		}
		for _, p := range f.OutputParams {
			checkParam(referrer, p)
		}
		for _, dep := range f.DerivedFrom {
			report.RefsChecked++
			if idx.formulas[dep] == nil {
				report.add(Finding{
					Kind:     MissingFormulaRef,
					Severity: opts.severityFor(MissingFormulaRef),
					Referrer: referrer,
					Ref:      dep,
				})
			}
			// derived_from between formulas is lineage, not citation;
			// it does not save the target from being an orphan.
		}
	}

	for _, s := range idx.Sections() {
		referrer := fmt.Sprintf("section %q", s.ID)
		for _, id := range s.FormulaRefs {
			checkFormula(referrer, id)
		}
		for _, p := range s.ParamRefs {
			checkParam(referrer, p)
		}
	}

	idx.findCycles(report, opts)

	for _, p := range reg.Paths() {
		if !paramRefd[p] {
			report.add(Finding{
				Kind:     OrphanParam,
				Severity: SeverityWarning,
				Ref:      string(p),
			})
		}
	}
	for _, id := range idx.formulaOrder {
		if !formulaRefd[id] {
			report.add(Finding{
				Kind:     OrphanFormula,
				Severity: SeverityWarning,
				Ref:      id,
			})
		}
	}

	logger.Debug("Cross-reference validation complete.",
		"refs_checked", report.RefsChecked,
		"errors", report.ErrorCount(),
		"warnings", report.WarningCount())
	return report
}

// findCycles records a finding for every formula whose derived_from closure
// includes the formula itself. Dangling derived_from targets are skipped
// here; they are already reported as missing references.
func (idx *Index) findCycles(report *Report, opts Options) {
	for _, id := range idx.formulaOrder {
		if idx.closureContains(id, id) {
			report.add(Finding{
				Kind:     FormulaCycle,
				Severity: opts.severityFor(FormulaCycle),
				Referrer: fmt.Sprintf("formula %q", id),
				Ref:      id,
			})
		}
	}
}

// closureContains walks derived_from edges from start and reports whether
// target is reachable. The visited set bounds the walk on cyclic input.
func (idx *Index) closureContains(start, target string) bool {
	visited := make(map[string]bool)
	var walk func(id string) bool
	walk = func(id string) bool {
		for _, dep := range idx.formulas[id].DerivedFrom {
			if idx.formulas[dep] == nil {
				continue
			}
			if dep == target {
				return true
			}
			if visited[dep] {
				continue
			}
			visited[dep] = true
			if walk(dep) {
				return true
			}
		}
		return false
	}
	return walk(start)
}
