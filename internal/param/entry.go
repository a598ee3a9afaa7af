// Package param defines the core data model for registry parameters: the
// dot-separated Path identifier, the provenance Status lattice, and the
// immutable Entry that binds a value to both.
package param

import "github.com/zclconf/go-cty/cty"

// Entry is one named value in the registry. Entries are created exactly once
// when their producing module executes and are never mutated afterward.
type Entry struct {
	// Path is the unique registry key.
	Path Path
	// Value holds the parameter value. cty's type system covers every
	// shape a parameter takes here: number, bool, string, or a list of
	// numbers for per-generation vectors.
	Value cty.Value
	// Status is the claimed provenance classification.
	Status Status
	// DerivedFrom lists the paths this value's computation read, in
	// order. Empty unless Status is Derived or Fitted.
	DerivedFrom []Path
	// Units is the free-text unit label, e.g. "MeV".
	Units string
	// Source is the free-text provenance label, e.g. an experimental
	// collaboration and year, or "geometry".
	Source string
}
