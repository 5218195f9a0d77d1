package studysim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthLeavesPopulationIntact(t *testing.T) {

	pop := makePopulation(t, 2000)
	nbefore := len(pop.Names())

	est, lo, hi, err := TrueOddsRatio(pop)
	require.NoError(t, err)
	assert.Greater(t, est, 0.0)
	assert.LessOrEqual(t, lo, est)
	assert.LessOrEqual(t, est, hi)

	est, lo, hi, err = TrueRateRatio(pop)
	require.NoError(t, err)
	assert.Greater(t, est, 0.0)
	assert.LessOrEqual(t, lo, est)
	assert.LessOrEqual(t, est, hi)

	// Neither benchmark fit leaves working columns on the shared
	// population.
	assert.Len(t, pop.Names(), nbefore)
	_, err = pop.Col("icept")
	assert.Error(t, err)
}
