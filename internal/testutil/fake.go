package testutil

import (
	"context"

	"github.com/vk/parametry/internal/module"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
)

// FakeModule is a configurable module implementation for tests.
type FakeModule struct {
	ModuleID string
	Inputs   []param.Path
	Outputs  []param.Path
	// Fn produces the module's results. When nil, Execute returns an
	// empty result map, which violates the output contract unless
	// Outputs is empty too.
	Fn func(ctx context.Context, reg *registry.Registry) (map[string]module.Result, error)
}

// ID implements module.Module.
func (f *FakeModule) ID() string { return f.ModuleID }

// RequiredInputs implements module.Module.
func (f *FakeModule) RequiredInputs() []param.Path { return f.Inputs }

// OutputParams implements module.Module.
func (f *FakeModule) OutputParams() []param.Path { return f.Outputs }

// Execute implements module.Module.
func (f *FakeModule) Execute(ctx context.Context, reg *registry.Registry) (map[string]module.Result, error) {
	if f.Fn == nil {
		return map[string]module.Result{}, nil
	}
	return f.Fn(ctx, reg)
}
