// Package module defines the contract between the core and the individual
// computation units. A module declares the registry paths it reads and the
// paths it promises to write; the scheduler decides when it runs.
package module

import (
	"context"
	"fmt"

	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module is a named computation unit. Implementations must be pure with
// respect to the registry: Execute may read any path listed in
// RequiredInputs and must return a value for exactly the paths listed in
// OutputParams.
type Module interface {
	// ID returns the unique identifier of the module.
	ID() string
	// RequiredInputs returns the paths that must exist before Execute is
	// called.
	RequiredInputs() []param.Path
	// OutputParams returns the paths this module promises to create.
	OutputParams() []param.Path
	// Execute computes the module's outputs, keyed by path string. It is
	// called exactly once, after all required inputs are declared.
	Execute(ctx context.Context, reg *registry.Registry) (map[string]Result, error)
}

// Result is one output value produced by a module's Execute call.
type Result struct {
	Value  cty.Value
	Status param.Status
	Units  string
	Source string
	// DerivedFrom optionally narrows the provenance of this output to a
	// subset of the module's declared inputs. When nil, the scheduler
	// records the full RequiredInputs set.
	DerivedFrom []param.Path
}

// Set is a registration-ordered collection of modules. Registration order is
// the tie-break for simultaneously-ready modules, so it must be stable.
type Set struct {
	modules []Module
	byID    map[string]Module
}

// NewSet creates an empty module set.
func NewSet() *Set {
	return &Set{byID: make(map[string]Module)}
}

// Register appends a module to the set. A duplicate ID is an error.
func (s *Set) Register(m Module) error {
	if _, exists := s.byID[m.ID()]; exists {
		return fmt.Errorf("module %q is already registered", m.ID())
	}
	s.byID[m.ID()] = m
	s.modules = append(s.modules, m)
	return nil
}

// Modules returns the registered modules in registration order.
func (s *Set) Modules() []Module {
	out := make([]Module, len(s.modules))
	copy(out, s.modules)
	return out
}

// Len returns the number of registered modules.
func (s *Set) Len() int {
	return len(s.modules)
}
