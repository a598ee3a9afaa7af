package scheduler

import (
	"fmt"
	"strings"

	"github.com/vk/parametry/internal/param"
)

// StuckModule describes one module that can never become ready: its ID and
// the input paths that no remaining module produces.
type StuckModule struct {
	ModuleID string
	Missing  []param.Path
}

// UnsatisfiableError is returned when a full readiness pass runs no module
// while unready modules remain. This is how true cycles between modules
// surface (A needs B's output, B needs A's) as well as plain missing
// producers.
type UnsatisfiableError struct {
	Stuck []StuckModule
}

// Error implements the error interface.
func (e *UnsatisfiableError) Error() string {
	parts := make([]string, 0, len(e.Stuck))
	for _, s := range e.Stuck {
		missing := make([]string, 0, len(s.Missing))
		for _, p := range s.Missing {
			missing = append(missing, string(p))
		}
		parts = append(parts, fmt.Sprintf("module %q is missing [%s]", s.ModuleID, strings.Join(missing, ", ")))
	}
	return "unsatisfiable dependencies: " + strings.Join(parts, "; ")
}

// ExecError wraps a failure inside a module's Execute call, or a violation
// of its output contract. It aborts the whole run.
type ExecError struct {
	ModuleID string
	Err      error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("module %q failed: %v", e.ModuleID, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExecError) Unwrap() error {
	return e.Err
}
