// Package status implements the provenance lattice check. For every entry
// with a non-empty derived_from set it computes the effective status implied
// by the entry's ancestry and compares it against the status the producing
// module claimed. A value that transitively rests on a fitted constant can
// never be labeled purely derived, no matter how many geometric steps
// separate them.
package status

import (
	"context"

	"github.com/vk/parametry/internal/ctxlog"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
)

// Mismatch reports one entry whose claimed status disagrees with the status
// the lattice assigns. Both statuses are carried so the fix is unambiguous.
type Mismatch struct {
	Path      param.Path
	Claimed   param.Status
	Effective param.Status
}

// Result accumulates everything one Check pass found. Mismatches are
// errors; undocumented leaves are warnings.
type Result struct {
	// Mismatches lists entries whose claimed status violates the lattice.
	Mismatches []Mismatch
	// UndocumentedLeaves lists entries that claim Derived but record no
	// derived_from paths at all. Such an entry is a leaf by definition,
	// so the status engine cannot check it; the missing documentation is
	// the defect.
	UndocumentedLeaves []param.Path
}

// OK reports whether the pass found no mismatches. Warnings do not count.
func (r *Result) OK() bool {
	return len(r.Mismatches) == 0
}

// Propagator walks derived_from chains over a finalized registry. Effective
// statuses are memoized; the walk terminates because the registry rejects
// forward references, so the entry graph cannot contain a cycle.
type Propagator struct {
	reg  *registry.Registry
	memo map[param.Path]param.Status
}

// New creates a propagator over a registry.
func New(reg *registry.Registry) *Propagator {
	return &Propagator{
		reg:  reg,
		memo: make(map[param.Path]param.Status),
	}
}

// Effective returns the lattice-assigned status of a declared entry.
//
// Leaves keep their claimed status. A Fitted claim is always its own
// origin: calibration introduces external information, so the lattice does
// not second-guess it, it only caps descendants. Otherwise any Fitted
// ancestor forces Fitted. An entry with exactly one ancestor may alias that
// ancestor's terminal status; everything else is Derived.
func (p *Propagator) Effective(path param.Path) (param.Status, error) {
	if s, ok := p.memo[path]; ok {
		return s, nil
	}

	entry, err := p.reg.Get(path)
	if err != nil {
		return 0, err
	}

	effective, err := p.compute(entry)
	if err != nil {
		return 0, err
	}
	p.memo[path] = effective
	return effective, nil
}

func (p *Propagator) compute(entry *param.Entry) (param.Status, error) {
	if len(entry.DerivedFrom) == 0 {
		return entry.Status, nil
	}
	if entry.Status == param.Fitted {
		return param.Fitted, nil
	}

	for _, dep := range entry.DerivedFrom {
		depStatus, err := p.Effective(dep)
		if err != nil {
			return 0, err
		}
		if depStatus == param.Fitted {
			return param.Fitted, nil
		}
	}

	if len(entry.DerivedFrom) == 1 && entry.Status.Terminal() {
		depStatus, err := p.Effective(entry.DerivedFrom[0])
		if err != nil {
			return 0, err
		}
		if depStatus == entry.Status {
			// A pure rename of a single terminal ancestor keeps the
			// ancestor's status.
			return entry.Status, nil
		}
	}

	return param.Derived, nil
}

// Check computes the effective status of every declared entry and collects
// all violations in one pass. Nothing aborts mid-walk: the point is to
// surface the complete list.
func (p *Propagator) Check(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	result := &Result{}

	for _, path := range p.reg.Paths() {
		entry, err := p.reg.Get(path)
		if err != nil {
			return nil, err
		}

		if len(entry.DerivedFrom) == 0 {
			if entry.Status == param.Derived {
				logger.Warn("Entry claims 'derived' but documents no inputs.", "path", path)
				result.UndocumentedLeaves = append(result.UndocumentedLeaves, path)
			}
			continue
		}

		effective, err := p.Effective(path)
		if err != nil {
			return nil, err
		}
		if effective != entry.Status {
			logger.Debug("Status mismatch found.", "path", path, "claimed", entry.Status, "effective", effective)
			result.Mismatches = append(result.Mismatches, Mismatch{
				Path:      path,
				Claimed:   entry.Status,
				Effective: effective,
			})
		}
	}

	logger.Debug("Status check complete.", "mismatches", len(result.Mismatches), "undocumented_leaves", len(result.UndocumentedLeaves))
	return result, nil
}
