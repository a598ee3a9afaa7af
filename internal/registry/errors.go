package registry

import (
	"fmt"

	"github.com/vk/parametry/internal/param"
)

// DuplicatePathError is returned by Declare when the path already exists.
// Re-declaring is always an error, even with an identical value: the
// registry is write-once.
type DuplicatePathError struct {
	Path param.Path
}

// Error implements the error interface.
func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("parameter %q is already declared", e.Path)
}

// UnknownDependencyError is returned by Declare when an entry's derived_from
// set references a path that does not exist yet. Forward references are
// rejected at write time, which keeps the entry graph a DAG by construction.
type UnknownDependencyError struct {
	Path    param.Path
	Missing param.Path
}

// Error implements the error interface.
func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("parameter %q derives from %q, which is not declared", e.Path, e.Missing)
}

// NotFoundError is returned by Get for an unknown path.
type NotFoundError struct {
	Path param.Path
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("parameter %q is not declared", e.Path)
}
