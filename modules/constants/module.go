// Package constants declares the externally measured inputs: experimental
// constants with their collaboration sources. They carry no internal
// derivation.
package constants

import (
	"context"

	"github.com/vk/parametry/internal/module"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the module.Module interface for this package.
type Module struct{}

// New creates the constants module.
func New() *Module {
	return &Module{}
}

// ID implements module.Module.
func (m *Module) ID() string { return "constants" }

// RequiredInputs implements module.Module. Measured constants are roots.
func (m *Module) RequiredInputs() []param.Path { return nil }

// OutputParams implements module.Module.
func (m *Module) OutputParams() []param.Path {
	return []param.Path{
		"constants.alpha_em_inv",
		"constants.m_electron",
		"constants.v_higgs",
	}
}

// Execute implements module.Module.
func (m *Module) Execute(ctx context.Context, reg *registry.Registry) (map[string]module.Result, error) {
	return map[string]module.Result{
		"constants.alpha_em_inv": {
			Value:  cty.NumberFloatVal(137.035999084),
			Status: param.Established,
			Source: "CODATA 2018",
		},
		"constants.m_electron": {
			Value:  cty.NumberFloatVal(0.51099895),
			Status: param.Established,
			Units:  "MeV",
			Source: "CODATA 2018",
		},
		"constants.v_higgs": {
			Value:  cty.NumberFloatVal(246.21965),
			Status: param.Established,
			Units:  "GeV",
			Source: "PDG 2022",
		},
	}, nil
}
