package spectral

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func seededRegistry(t *testing.T, b3, nGen int64) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Declare(&param.Entry{
		Path:   "topology.b3",
		Value:  cty.NumberIntVal(b3),
		Status: param.Geometric,
		Source: "geometry",
	}))
	require.NoError(t, r.Declare(&param.Entry{
		Path:   "topology.n_gen",
		Value:  cty.NumberIntVal(nGen),
		Status: param.Geometric,
		Source: "geometry",
	}))
	return r
}

func TestExecute(t *testing.T) {
	reg := seededRegistry(t, 24, 3)

	out, err := New().Execute(context.Background(), reg)
	require.NoError(t, err)
	require.Len(t, out, 2)

	seps := out["spectral.cycle_separation"]
	require.True(t, seps.Value.Type().IsListType())
	var got []float64
	for _, v := range seps.Value.AsValueSlice() {
		f, _ := v.AsBigFloat().Float64()
		got = append(got, f)
	}
	assert.Equal(t, []float64{8, 16, 24}, got)
	assert.Equal(t, param.Derived, seps.Status)

	scale := out["spectral.volume_scale"]
	assert.True(t, scale.Value.RawEquals(cty.NumberFloatVal(576)))
	assert.Equal(t, []param.Path{"topology.b3"}, scale.DerivedFrom)
}

func TestExecuteRejectsNonPositiveGenerations(t *testing.T) {
	reg := seededRegistry(t, 24, 0)

	_, err := New().Execute(context.Background(), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation count")
}

func TestExecuteMissingInput(t *testing.T) {
	_, err := New().Execute(context.Background(), registry.New())
	assert.Error(t, err)
}
