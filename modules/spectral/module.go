// Package spectral computes the derived spectrum parameters from the
// topological invariants: per-generation cycle separations and the overall
// mass ratio. Everything here is purely derived from geometry.
package spectral

import (
	"context"
	"fmt"

	"github.com/vk/parametry/internal/module"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the module.Module interface for this package.
type Module struct{}

// New creates the spectral module.
func New() *Module {
	return &Module{}
}

// ID implements module.Module.
func (m *Module) ID() string { return "spectral" }

// RequiredInputs implements module.Module.
func (m *Module) RequiredInputs() []param.Path {
	return []param.Path{"topology.b3", "topology.n_gen"}
}

// OutputParams implements module.Module.
func (m *Module) OutputParams() []param.Path {
	return []param.Path{
		"spectral.cycle_separation",
		"spectral.volume_scale",
	}
}

// Execute implements module.Module.
func (m *Module) Execute(ctx context.Context, reg *registry.Registry) (map[string]module.Result, error) {
	b3, err := integer(reg, "topology.b3")
	if err != nil {
		return nil, err
	}
	nGen, err := integer(reg, "topology.n_gen")
	if err != nil {
		return nil, err
	}
	if nGen <= 0 {
		return nil, fmt.Errorf("generation count must be positive, got %d", nGen)
	}

	// One separation per generation, in units of the base cycle spacing.
	separations := make([]cty.Value, 0, nGen)
	for g := int64(1); g <= nGen; g++ {
		separations = append(separations, cty.NumberFloatVal(float64(b3)/float64(nGen)*float64(g)))
	}

	return map[string]module.Result{
		"spectral.cycle_separation": {
			Value:  cty.ListVal(separations),
			Status: param.Derived,
			Source: "computed",
		},
		// The volume scale depends only on b3, so its provenance is
		// narrowed to that single input.
		"spectral.volume_scale": {
			Value:       cty.NumberFloatVal(float64(b3 * b3)),
			Status:      param.Derived,
			Source:      "computed",
			DerivedFrom: []param.Path{"topology.b3"},
		},
	}, nil
}

// integer reads a registry entry and converts it to an int64.
func integer(reg *registry.Registry, path param.Path) (int64, error) {
	entry, err := reg.Get(path)
	if err != nil {
		return 0, err
	}
	if entry.Value.Type() != cty.Number {
		return 0, fmt.Errorf("parameter %q is not a number", path)
	}
	v, _ := entry.Value.AsBigFloat().Int64()
	return v, nil
}
