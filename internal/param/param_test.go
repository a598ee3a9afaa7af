package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	t.Run("valid paths", func(t *testing.T) {
		for _, raw := range []string{"a", "topology.b3", "a.b.c.d"} {
			p, err := ParsePath(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, p.String())
		}
	})

	t.Run("error cases", func(t *testing.T) {
		for _, raw := range []string{"", ".", "a.", ".a", "a..b"} {
			_, err := ParsePath(raw)
			assert.Error(t, err, "raw=%q", raw)
		}
	})

	t.Run("case sensitive", func(t *testing.T) {
		a := MustPath("topology.B3")
		b := MustPath("topology.b3")
		assert.NotEqual(t, a, b)
	})
}

func TestPathSegments(t *testing.T) {
	assert.Equal(t, []string{"topology", "b3"}, MustPath("topology.b3").Segments())
}

func TestMustPathPanics(t *testing.T) {
	assert.Panics(t, func() { MustPath("") })
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"established": Established,
		"fitted":      Fitted,
		"geometric":   Geometric,
		"derived":     Derived,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, raw, got.String())
	}

	_, err := ParseStatus("ESTABLISHED")
	assert.Error(t, err)
	_, err = ParseStatus("measured")
	assert.Error(t, err)
}

func TestStatusLattice(t *testing.T) {
	assert.Equal(t, 0, Established.Rank())
	assert.Equal(t, 0, Geometric.Rank())
	assert.Equal(t, 1, Fitted.Rank())
	assert.Equal(t, 2, Derived.Rank())

	assert.True(t, Established.Terminal())
	assert.True(t, Geometric.Terminal())
	assert.False(t, Fitted.Terminal())
	assert.False(t, Derived.Terminal())
}
