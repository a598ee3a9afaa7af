package integrationtests

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/snapshot"
	"github.com/vk/parametry/internal/testutil"
	"github.com/vk/parametry/internal/xref"
)

// paperDocs is a small document set citing the parameters the built-in
// modules produce.
var paperDocs = map[string]string{
	"paper.hcl": `
formula "coupling_norm" {
  title   = "Normalized coupling from the third Betti number"
  inputs  = ["topology.b3", "constants.alpha_em_inv"]
  outputs = ["calibration.g_norm"]
}

formula "cycle_spectrum" {
  title        = "Per-generation cycle separations"
  inputs       = ["topology.b3", "topology.n_gen"]
  outputs      = ["spectral.cycle_separation", "spectral.volume_scale"]
  derived_from = ["coupling_norm"]
}

section "geometry" {
  title    = "Geometric inputs"
  params   = ["topology.b2", "topology.b3", "topology.euler", "topology.n_gen"]
}

section "couplings" {
  title    = "Couplings and spectrum"
  formulas = ["coupling_norm", "cycle_spectrum"]
  params   = ["constants.alpha_em_inv", "constants.m_electron", "constants.v_higgs"]
}
`,
}

func TestCoreModulesBuildCleanly(t *testing.T) {
	// Passing no modules makes the harness run the compiled-in set.
	result := testutil.RunBuild(t, paperDocs)
	require.NoError(t, result.Err)

	reg := result.App.Registry()
	for _, path := range []string{
		"topology.b2", "topology.b3", "topology.euler", "topology.n_gen",
		"constants.alpha_em_inv", "constants.m_electron", "constants.v_higgs",
		"calibration.g_norm", "spectral.cycle_separation", "spectral.volume_scale",
	} {
		assert.True(t, reg.Has(param.MustPath(path)), "missing %s", path)
	}

	statusResult, err := result.App.CheckStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, statusResult.OK())
	assert.Empty(t, statusResult.UndocumentedLeaves)
}

func TestCoreModulesValidateCleanly(t *testing.T) {
	result := testutil.RunBuild(t, paperDocs)
	require.NoError(t, result.Err)

	report, err := result.App.Validate(context.Background(), xref.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, report.ErrorCount())
	// Every built-in parameter is cited by the paper documents.
	assert.Equal(t, 0, report.CountByKind(xref.OrphanParam))
}

func TestCoreModulesSnapshotRoundTrip(t *testing.T) {
	result := testutil.RunBuild(t, paperDocs)
	require.NoError(t, result.Err)

	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(result.App.Registry(), &buf))

	entries, err := snapshot.Read(&buf)
	require.NoError(t, err)
	assert.Len(t, entries, result.App.Registry().Len())
}

func TestCoreModulesDeterministic(t *testing.T) {
	run := func() []string {
		result := testutil.RunBuild(t, paperDocs)
		require.NoError(t, result.Err)
		paths := result.App.Registry().Paths()
		out := make([]string, 0, len(paths))
		for _, p := range paths {
			out = append(out, string(p))
		}
		return out
	}
	assert.Equal(t, run(), run())
}
