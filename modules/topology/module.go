// Package topology declares the geometric invariants of the compactification:
// Betti numbers, the Euler characteristic, and the generation count. These
// are fixed by topology, not measured and not derived.
package topology

import (
	"context"

	"github.com/vk/parametry/internal/module"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the module.Module interface for this package.
type Module struct{}

// New creates the topology module.
func New() *Module {
	return &Module{}
}

// ID implements module.Module.
func (m *Module) ID() string { return "topology" }

// RequiredInputs implements module.Module. Topology is a root module.
func (m *Module) RequiredInputs() []param.Path { return nil }

// OutputParams implements module.Module.
func (m *Module) OutputParams() []param.Path {
	return []param.Path{
		"topology.b2",
		"topology.b3",
		"topology.euler",
		"topology.n_gen",
	}
}

// Execute implements module.Module.
func (m *Module) Execute(ctx context.Context, reg *registry.Registry) (map[string]module.Result, error) {
	geometric := func(v int64) module.Result {
		return module.Result{
			Value:  cty.NumberIntVal(v),
			Status: param.Geometric,
			Source: "geometry",
		}
	}
	return map[string]module.Result{
		"topology.b2":    geometric(12),
		"topology.b3":    geometric(24),
		"topology.euler": geometric(-72),
		"topology.n_gen": geometric(3),
	}, nil
}
