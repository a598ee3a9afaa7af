// Package registry provides the single source of truth for all parameter
// values: a write-once mapping from dot-separated path to entry. There are
// no update or delete operations. Combined with the rule that derived_from
// may only reference already-declared paths, this makes the entry graph a
// DAG by construction.
package registry

import (
	"log/slog"
	"sync"

	"github.com/vk/parametry/internal/param"
)

// Registry holds all declared parameter entries for a single run.
type Registry struct {
	// mu serializes Declare's check-and-insert against concurrent readers.
	mu      sync.RWMutex
	entries map[param.Path]*param.Entry
	// order records declaration order so snapshots and reports are
	// reproducible across runs.
	order []param.Path
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[param.Path]*param.Entry),
	}
}

// Declare inserts a new entry. It fails with *DuplicatePathError if the path
// already exists and with *UnknownDependencyError if any derived_from path
// is absent. The check and the insert are atomic.
func (r *Registry) Declare(entry *param.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.Path]; exists {
		return &DuplicatePathError{Path: entry.Path}
	}
	for _, dep := range entry.DerivedFrom {
		if _, ok := r.entries[dep]; !ok {
			return &UnknownDependencyError{Path: entry.Path, Missing: dep}
		}
	}

	slog.Debug("Declaring parameter.", "path", entry.Path, "status", entry.Status)
	r.entries[entry.Path] = entry
	r.order = append(r.order, entry.Path)
	return nil
}

// Get returns the entry for a path, or *NotFoundError.
func (r *Registry) Get(path param.Path) (*param.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[path]
	if !ok {
		return nil, &NotFoundError{Path: path}
	}
	return entry, nil
}

// Has reports whether a path is declared. It is the non-failing existence
// check used by the scheduler's readiness scan.
func (r *Registry) Has(path param.Path) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[path]
	return ok
}

// Len returns the number of declared entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Paths returns all declared paths in declaration order.
func (r *Registry) Paths() []param.Path {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]param.Path, len(r.order))
	copy(paths, r.order)
	return paths
}
