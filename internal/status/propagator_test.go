package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func declare(t *testing.T, r *registry.Registry, path string, status param.Status, derivedFrom ...string) {
	t.Helper()
	deps := make([]param.Path, 0, len(derivedFrom))
	for _, d := range derivedFrom {
		deps = append(deps, param.MustPath(d))
	}
	require.NoError(t, r.Declare(&param.Entry{
		Path:        param.MustPath(path),
		Value:       cty.NumberIntVal(1),
		Status:      status,
		DerivedFrom: deps,
	}))
}

func TestEffectiveLeavesKeepClaimedStatus(t *testing.T) {
	r := registry.New()
	declare(t, r, "geo.x", param.Geometric)
	declare(t, r, "meas.y", param.Established)

	p := New(r)
	for path, want := range map[string]param.Status{
		"geo.x":  param.Geometric,
		"meas.y": param.Established,
	} {
		got, err := p.Effective(param.MustPath(path))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEffectiveDerivedFromGeometric(t *testing.T) {
	r := registry.New()
	declare(t, r, "geo.x", param.Geometric)
	declare(t, r, "calc.y", param.Derived, "geo.x")

	got, err := New(r).Effective("calc.y")
	require.NoError(t, err)
	assert.Equal(t, param.Derived, got)
}

func TestEffectiveFittedAncestryIsSticky(t *testing.T) {
	// fit.g is calibrated; several purely geometric steps follow. The
	// descendant may never be labeled Derived.
	r := registry.New()
	declare(t, r, "geo.b3", param.Geometric)
	declare(t, r, "meas.alpha", param.Established)
	declare(t, r, "fit.g", param.Fitted, "geo.b3", "meas.alpha")
	declare(t, r, "calc.a", param.Derived, "fit.g")
	declare(t, r, "calc.b", param.Derived, "calc.a", "geo.b3")
	declare(t, r, "calc.c", param.Derived, "calc.b")

	p := New(r)
	for _, path := range []string{"calc.a", "calc.b", "calc.c"} {
		got, err := p.Effective(param.MustPath(path))
		require.NoError(t, err)
		assert.Equal(t, param.Fitted, got, "path=%s", path)
	}
}

func TestEffectiveSingleAncestorAlias(t *testing.T) {
	r := registry.New()
	declare(t, r, "geo.b3", param.Geometric)
	// A pure rename keeps the ancestor's terminal status.
	declare(t, r, "alias.b3", param.Geometric, "geo.b3")

	got, err := New(r).Effective("alias.b3")
	require.NoError(t, err)
	assert.Equal(t, param.Geometric, got)
}

func TestEffectiveFittedClaimIsItsOwnOrigin(t *testing.T) {
	r := registry.New()
	declare(t, r, "geo.b3", param.Geometric)
	declare(t, r, "fit.g", param.Fitted, "geo.b3")

	got, err := New(r).Effective("fit.g")
	require.NoError(t, err)
	assert.Equal(t, param.Fitted, got)
}

func TestCheckReportsMismatches(t *testing.T) {
	r := registry.New()
	declare(t, r, "geo.b3", param.Geometric)
	declare(t, r, "meas.alpha", param.Established)
	declare(t, r, "fit.g", param.Fitted, "geo.b3", "meas.alpha")
	// Claims to be purely derived, but rests on the fitted coupling.
	declare(t, r, "calc.bad", param.Derived, "fit.g", "geo.b3")
	// Claims geometric despite mixing two ancestors.
	declare(t, r, "geo.bad", param.Geometric, "geo.b3", "meas.alpha")
	// Correctly derived.
	declare(t, r, "calc.good", param.Derived, "geo.b3")

	result, err := New(r).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Mismatches, 2)
	assert.False(t, result.OK())

	byPath := make(map[param.Path]Mismatch)
	for _, m := range result.Mismatches {
		byPath[m.Path] = m
	}

	bad, ok := byPath["calc.bad"]
	require.True(t, ok)
	assert.Equal(t, param.Derived, bad.Claimed)
	assert.Equal(t, param.Fitted, bad.Effective)

	geoBad, ok := byPath["geo.bad"]
	require.True(t, ok)
	assert.Equal(t, param.Geometric, geoBad.Claimed)
	assert.Equal(t, param.Derived, geoBad.Effective)
}

func TestCheckUndocumentedLeafIsWarningNotMismatch(t *testing.T) {
	// An entry claiming Derived with an empty derived_from is a leaf by
	// definition: the status engine cannot check it, so it surfaces as a
	// warning instead of a mismatch.
	r := registry.New()
	declare(t, r, "calc.orphaned", param.Derived)

	result, err := New(r).Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Mismatches)
	assert.True(t, result.OK())
	assert.Equal(t, []param.Path{"calc.orphaned"}, result.UndocumentedLeaves)
}

func TestCheckCleanRegistry(t *testing.T) {
	r := registry.New()
	declare(t, r, "geo.b3", param.Geometric)
	declare(t, r, "calc.y", param.Derived, "geo.b3")

	result, err := New(r).Check(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Empty(t, result.UndocumentedLeaves)
}

func TestEffectiveMemoization(t *testing.T) {
	// A deep chain would be quadratic without memoization; this mostly
	// guards against accidental recomputation bugs.
	r := registry.New()
	declare(t, r, "chain.0", param.Geometric)
	prev := "chain.0"
	for i := 1; i <= 50; i++ {
		cur := param.Path("chain." + string(rune('a'+i%26)) + string(rune('a'+i/26)))
		declare(t, r, string(cur), param.Derived, prev)
		prev = string(cur)
	}

	p := New(r)
	got, err := p.Effective(param.MustPath(prev))
	require.NoError(t, err)
	assert.Equal(t, param.Derived, got)
}
