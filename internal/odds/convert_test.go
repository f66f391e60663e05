package odds

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpliedProbability(t *testing.T) {
	for _, d := range []float64{1.01, 1.5, 1.91, 2.0, 3.75, 101.0} {
		p, err := ImpliedProbability(d)
		require.NoError(t, err)
		assert.InDelta(t, 1.0/d, p, 1e-12)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
}

func TestImpliedProbabilityRejectsInvalid(t *testing.T) {
	for _, d := range []float64{1.0, 0.99, 0, -2.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ImpliedProbability(d)
		require.Error(t, err, "odds %v", d)

		var invalid *InvalidOddsError
		require.True(t, errors.As(err, &invalid))
		if !math.IsNaN(d) {
			assert.Equal(t, d, invalid.Odds)
		}
	}
}

func TestDevigPairSumsToOne(t *testing.T) {
	cases := [][2]float64{
		{1.91, 1.91},
		{1.91, 2.00},
		{1.05, 12.0},
		{3.40, 1.30},
		{1.002, 500.0},
	}
	for _, c := range cases {
		fairA, fairB, err := DevigPair(c[0], c[1])
		require.NoError(t, err)
		assert.InDelta(t, 1.0, fairA+fairB, 1e-9)
		assert.Greater(t, fairA, 0.0)
		assert.Less(t, fairA, 1.0)
	}
}

func TestDevigPairRemovesMargin(t *testing.T) {
	// Symmetric -110 style quote devigs to a coin flip.
	fairA, fairB, err := DevigPair(1.91, 1.91)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fairA, 1e-12)
	assert.InDelta(t, 0.5, fairB, 1e-12)
}

func TestDevigPairPropagatesInvalidOdds(t *testing.T) {
	_, _, err := DevigPair(1.0, 2.0)
	require.Error(t, err)
	_, _, err = DevigPair(2.0, math.Inf(1))
	require.Error(t, err)
}
