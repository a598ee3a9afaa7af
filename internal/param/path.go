package param

import (
	"fmt"
	"strings"
)

// Path is the dot-separated identifier of a parameter in the registry,
// e.g. "topology.b3". Paths are case-sensitive and every segment must be
// non-empty.
type Path string

// ParsePath validates a raw string and returns it as a Path.
func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return "", fmt.Errorf("parameter path must not be empty")
	}
	for _, seg := range strings.Split(raw, ".") {
		if seg == "" {
			return "", fmt.Errorf("parameter path %q contains an empty segment", raw)
		}
	}
	return Path(raw), nil
}

// MustPath is ParsePath for statically-known paths; it panics on invalid input.
func MustPath(raw string) Path {
	p, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePaths validates a slice of raw strings in order.
func ParsePaths(raw []string) ([]Path, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	paths := make([]Path, 0, len(raw))
	for _, r := range raw {
		p, err := ParsePath(r)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Segments returns the ordered path segments.
func (p Path) Segments() []string {
	return strings.Split(string(p), ".")
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return string(p)
}
