package poincare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// symmetricRR has difference multiset {±10, ±20, ±30}: every deceleration
// is mirrored by an equal acceleration, so every asymmetry index must sit
// at its no-asymmetry baseline.
var symmetricRR = []float64{800, 830, 800, 810, 800, 820, 800}

func TestMonotonicSequence(t *testing.T) {
	rr := []float64{700, 710, 730, 760, 800, 850}

	m, err := Compute(rr, Options{})
	require.NoError(t, err)

	// every difference is positive: no point below the identity line
	assert.Equal(t, 0.0, m.PortaIndex)
	assert.Equal(t, 100.0, m.GuzikIndex)
	assert.Equal(t, 100.0, m.SlopeIndex)
	assert.Equal(t, 100.0, m.AreaIndex)
	assert.Equal(t, 100.0, m.HistogramAMI)
	// kernel tails leak a little mass across zero, but the index stays
	// near its upper bound
	assert.Greater(t, m.KDEAMI, 80.0)
	assert.LessOrEqual(t, m.KDEAMI, 100.0)
}

func TestSymmetricSequenceBaselines(t *testing.T) {
	m, err := Compute(symmetricRR, Options{Bins: 40})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, m.GuzikIndex, 1e-9)
	assert.InDelta(t, 50.0, m.PortaIndex, 1e-9)
	assert.InDelta(t, 50.0, m.SlopeIndex, 1e-9)
	assert.InDelta(t, 50.0, m.AreaIndex, 1e-9)
	assert.InDelta(t, 0.0, m.HistogramAMI, 1e-9)
	assert.InDelta(t, 0.0, m.KDEAMI, 1e-6)
}

func TestAsymmetricSpreadBaseline(t *testing.T) {
	// long alternating sequence: mirrored decel/accel arcs; the sample-sd
	// ratio approaches the 0.5 baseline as the point count grows
	rr := []float64{800}
	for k := 1; k <= 40; k++ {
		rr = append(rr, 800+5*float64(k), 800)
	}

	asi, err := AsymmetricSpread(rr)
	require.NoError(t, err)
	require.InDelta(t, 0.5, asi, 0.01)
}

func TestOnLinePointPolicy(t *testing.T) {
	// one point exactly on the identity line between a mirrored pair
	rr := []float64{800, 800, 820, 800}

	gi, err := GuzikIndex(rr)
	require.NoError(t, err)
	pi, err := PortaIndex(rr)
	require.NoError(t, err)

	// the on-line point adds zero distance to both Guzik sums and is
	// excluded from the Porta denominator
	assert.InDelta(t, 50.0, gi, 1e-12)
	assert.InDelta(t, 50.0, pi, 1e-12)
}

func TestDecelerationDominantDirection(t *testing.T) {
	// more and larger decelerations than accelerations
	rr := []float64{800, 840, 835, 880, 870, 930}

	m, err := Compute(rr, Options{})
	require.NoError(t, err)

	assert.Greater(t, m.GuzikIndex, 50.0)
	assert.Less(t, m.PortaIndex, 50.0)
	assert.Greater(t, m.SlopeIndex, 50.0)
	assert.Greater(t, m.AreaIndex, 50.0)
	assert.Greater(t, m.HistogramAMI, 0.0)
	assert.Greater(t, m.KDEAMI, 0.0)
}

func TestAsymmetricSpreadDegenerate(t *testing.T) {
	// a single decelerating point cannot carry a sample deviation
	asi, err := AsymmetricSpread([]float64{800, 820, 810})
	require.NoError(t, err)
	assert.Zero(t, asi)
}
