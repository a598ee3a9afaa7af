package param

import "fmt"

// Status is the provenance classification of a registry entry. The four
// values form a small lattice used by the status propagator: Established and
// Geometric are terminal leaves (rank 0), Fitted is rank 1, and Derived is
// rank 2. A value whose ancestry contains a Fitted entry can never honestly
// be labeled Derived.
type Status int

const (
	// Established marks an externally measured value. It carries no
	// internal derivation.
	Established Status = iota
	// Fitted marks a value calibrated to match an external measurement.
	Fitted
	// Geometric marks a value fixed by topology or definition, such as an
	// integer Betti number.
	Geometric
	// Derived marks a value computed purely from other registry entries.
	Derived
)

var statusNames = map[Status]string{
	Established: "established",
	Fitted:      "fitted",
	Geometric:   "geometric",
	Derived:     "derived",
}

// ParseStatus converts a lower-case status name into a Status.
func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q: must be 'established', 'fitted', 'geometric', or 'derived'", raw)
}

// Rank returns the lattice rank of the status.
func (s Status) Rank() int {
	switch s {
	case Established, Geometric:
		return 0
	case Fitted:
		return 1
	default:
		return 2
	}
}

// Terminal reports whether the status is a leaf-only status, i.e. one that
// carries no internal derivation (Established or Geometric).
func (s Status) Terminal() bool {
	return s == Established || s == Geometric
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}
