package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/parametry/internal/ctxlog"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/scheduler"
	"github.com/vk/parametry/internal/snapshot"
	"github.com/vk/parametry/internal/status"
	"github.com/vk/parametry/internal/xref"
)

// Build populates the registry: document-declared leaf parameters first, in
// file order, then every computation module in dependency order. Build
// errors are fatal; a partially-populated registry cannot be trusted by
// anything downstream.
func (a *App) Build(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if a.built {
		return fmt.Errorf("build already ran; the registry is write-once")
	}
	a.built = true

	a.logger.Debug("Declaring document parameters.", "count", len(a.model.Params))
	for _, decl := range a.model.Params {
		err := a.registry.Declare(&param.Entry{
			Path:   decl.Path,
			Value:  decl.Value,
			Status: decl.Status,
			Units:  decl.Units,
			Source: decl.Source,
		})
		if err != nil {
			return fmt.Errorf("failed to declare document parameter: %w", err)
		}
	}

	a.logger.Debug("Scheduler starting.", "modules", a.set.Len(), "workers", a.config.WorkerCount)
	sched := scheduler.New(a.registry, a.set, a.config.WorkerCount)
	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("module execution failed: %w", err)
	}
	a.logger.Info("Registry built.", "entries", a.registry.Len(), "execution_order", sched.Order())

	return nil
}

// CheckStatus runs the provenance lattice check over the built registry.
func (a *App) CheckStatus(ctx context.Context) (*status.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	return status.New(a.registry).Check(ctx)
}

// Validate builds the cross-reference index from the document model and
// validates every reference against the registry.
func (a *App) Validate(ctx context.Context, opts xref.Options) (*xref.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	idx, err := xref.BuildIndex(a.model.Formulas, a.model.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to build cross-reference index: %w", err)
	}
	return idx.Validate(ctx, a.registry, opts), nil
}

// WriteSnapshot serializes the built registry to the configured snapshot
// path, if one is set.
func (a *App) WriteSnapshot() error {
	if a.config.SnapshotPath == "" {
		return nil
	}
	f, err := os.Create(a.config.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	if err := snapshot.Write(a.registry, f); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	a.logger.Info("Snapshot written.", "path", a.config.SnapshotPath, "entries", a.registry.Len())
	return nil
}
