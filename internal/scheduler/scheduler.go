// Package scheduler orders computation modules so each runs only after all
// of its required inputs exist in the registry. Scheduling is pass-based:
// every pass runs the modules that are currently ready, in registration
// order, then rescans. A pass that runs nothing while modules remain is an
// unsatisfiable-dependency failure, which is also how module-level cycles
// are diagnosed.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/parametry/internal/ctxlog"
	"github.com/vk/parametry/internal/module"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
)

// Scheduler runs a module set against a registry.
type Scheduler struct {
	reg     *registry.Registry
	set     *module.Set
	workers int
	order   []string
}

// New creates a scheduler. workers bounds how many Execute calls may run
// concurrently within one readiness pass; values below 1 mean serial.
func New(reg *registry.Registry, set *module.Set, workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{reg: reg, set: set, workers: workers}
}

// Order returns the module IDs in the order they were executed. It is only
// meaningful after Run returns nil.
func (s *Scheduler) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Run executes every module exactly once, declaring its outputs into the
// registry. Any failure is fatal to the run: the registry must never hold a
// module's partial output.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	pending := s.set.Modules()
	pass := 0

	for len(pending) > 0 {
		pass++
		ready, blocked := s.scan(pending)
		logger.Debug("Readiness pass computed.", "pass", pass, "ready", len(ready), "blocked", len(blocked))

		if len(ready) == 0 {
			return s.unsatisfiable(blocked)
		}

		results, err := s.executePass(ctx, ready)
		if err != nil {
			return err
		}

		// Declares are serialized in registration order so registry
		// contents and declaration order are identical across runs.
		for i, m := range ready {
			if err := s.declareOutputs(m, results[i]); err != nil {
				return err
			}
			s.order = append(s.order, m.ID())
		}

		pending = blocked
	}

	logger.Debug("All modules executed.", "passes", pass, "modules", len(s.order))
	return nil
}

// scan splits pending modules into ready and blocked, preserving
// registration order in both slices.
func (s *Scheduler) scan(pending []module.Module) (ready, blocked []module.Module) {
	for _, m := range pending {
		if s.isReady(m) {
			ready = append(ready, m)
		} else {
			blocked = append(blocked, m)
		}
	}
	return ready, blocked
}

func (s *Scheduler) isReady(m module.Module) bool {
	for _, input := range m.RequiredInputs() {
		if !s.reg.Has(input) {
			return false
		}
	}
	return true
}

// executePass runs the ready modules, possibly across a worker pool. The
// modules in one pass are mutually independent: none can read another's
// not-yet-declared output, so only the result collection needs care. If
// several modules fail, the error of the earliest-registered one wins, to
// keep failures deterministic.
func (s *Scheduler) executePass(ctx context.Context, ready []module.Module) ([]map[string]module.Result, error) {
	results := make([]map[string]module.Result, len(ready))
	errs := make([]error, len(ready))

	if s.workers == 1 || len(ready) == 1 {
		for i, m := range ready {
			results[i], errs[i] = m.Execute(ctx, s.reg)
			if errs[i] != nil {
				return nil, &ExecError{ModuleID: m.ID(), Err: errs[i]}
			}
		}
		return results, nil
	}

	indexChan := make(chan int, len(ready))
	for i := range ready {
		indexChan <- i
	}
	close(indexChan)

	var wg sync.WaitGroup
	workers := s.workers
	if workers > len(ready) {
		workers = len(ready)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexChan {
				results[i], errs[i] = ready[i].Execute(ctx, s.reg)
			}
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &ExecError{ModuleID: ready[i].ID(), Err: err}
		}
	}
	return results, nil
}

// declareOutputs checks a module's returned values against its output
// contract and declares them. The preconditions are checked for the whole
// set before the first declare, so the registry gains either all of the
// module's outputs or none of them.
func (s *Scheduler) declareOutputs(m module.Module, results map[string]module.Result) error {
	outputs := m.OutputParams()

	if len(results) != len(outputs) {
		return &ExecError{ModuleID: m.ID(), Err: fmt.Errorf(
			"declared %d output params but returned %d values", len(outputs), len(results))}
	}

	entries := make([]*param.Entry, 0, len(outputs))
	for _, out := range outputs {
		res, ok := results[string(out)]
		if !ok {
			return &ExecError{ModuleID: m.ID(), Err: fmt.Errorf(
				"did not return a value for declared output %q", out)}
		}
		derivedFrom := res.DerivedFrom
		if derivedFrom == nil {
			derivedFrom = m.RequiredInputs()
		} else if err := s.checkNarrowing(m, derivedFrom); err != nil {
			return err
		}
		entries = append(entries, &param.Entry{
			Path:        out,
			Value:       res.Value,
			Status:      res.Status,
			DerivedFrom: derivedFrom,
			Units:       res.Units,
			Source:      res.Source,
		})
	}

	for _, entry := range entries {
		if s.reg.Has(entry.Path) {
			return &ExecError{ModuleID: m.ID(), Err: &registry.DuplicatePathError{Path: entry.Path}}
		}
	}
	for _, entry := range entries {
		if err := s.reg.Declare(entry); err != nil {
			return &ExecError{ModuleID: m.ID(), Err: err}
		}
	}
	return nil
}

// checkNarrowing rejects a DerivedFrom override that names a path outside
// the module's declared inputs. Narrowing is legitimate; widening is not.
func (s *Scheduler) checkNarrowing(m module.Module, derivedFrom []param.Path) error {
	declared := make(map[param.Path]struct{}, len(m.RequiredInputs()))
	for _, in := range m.RequiredInputs() {
		declared[in] = struct{}{}
	}
	for _, p := range derivedFrom {
		if _, ok := declared[p]; !ok {
			return &ExecError{ModuleID: m.ID(), Err: fmt.Errorf(
				"derived_from override names %q, which is not a declared input", p)}
		}
	}
	return nil
}

// unsatisfiable builds the diagnosis for a stuck pass: every blocked module
// and the inputs it is missing.
func (s *Scheduler) unsatisfiable(blocked []module.Module) error {
	stuck := make([]StuckModule, 0, len(blocked))
	for _, m := range blocked {
		var missing []param.Path
		for _, input := range m.RequiredInputs() {
			if !s.reg.Has(input) {
				missing = append(missing, input)
			}
		}
		stuck = append(stuck, StuckModule{ModuleID: m.ID(), Missing: missing})
	}

	return &UnsatisfiableError{Stuck: stuck}
}
