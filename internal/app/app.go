// Package app wires the document loader, module set, registry, scheduler,
// status propagator, and cross-reference validator into a single runnable
// application instance.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/parametry/internal/ctxlog"
	"github.com/vk/parametry/internal/docload"
	"github.com/vk/parametry/internal/module"
	"github.com/vk/parametry/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	model    *docload.Model
	set      *module.Set
	registry *registry.Registry
	built    bool
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. When
// no modules are passed, the built-in set is used.
func NewApp(outW io.Writer, cfg *Config, loader *docload.Loader, modules ...module.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.DocsPath)
	if err != nil {
		// A failure to load documents is a fatal startup error.
		panic(fmt.Errorf("failed to load parameter documents: %w", err))
	}
	logger.Debug("Parameter documents loaded into unified model.")

	set := module.NewSet()
	if len(modules) == 0 {
		modules = coreModules()
	}
	for _, m := range modules {
		if err := set.Register(m); err != nil {
			// A duplicate module ID is a programmer error.
			panic(err)
		}
	}
	logger.Debug("All computation modules registered.", "count", set.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		model:    model,
		set:      set,
		registry: registry.New(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded document model. This is primarily for testing.
func (a *App) Model() *docload.Model {
	return a.model
}
