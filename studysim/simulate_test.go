package studysim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateCumulativeSRS(t *testing.T) {

	pop := makePopulation(t, 4000)
	cases, controls := partition(t, pop)

	r, err := Simulate(Params{Seed: 1, Design: DesignCumulative, Scheme: SchemeSRS, Ratio: 1}, pop)
	require.NoError(t, err)

	// All cases plus ratio-many controls.
	require.Equal(t, 2*len(cases), r.Sample.NumRow())

	// Cases carry unit weight, controls the uniform srs weight.
	y, err := r.Sample.Col("Y")
	require.NoError(t, err)
	wt, err := r.Sample.Col("sampweight")
	require.NoError(t, err)
	want := float64(len(controls)) / float64(len(cases))
	for i := range y {
		if y[i] == 1 {
			assert.Equal(t, 1.0, wt[i])
		} else {
			assert.Equal(t, want, wt[i])
		}
	}

	// A positive point estimate inside its interval.
	assert.Greater(t, r.Estimate, 0.0)
	assert.LessOrEqual(t, r.Lower, r.Estimate)
	assert.LessOrEqual(t, r.Estimate, r.Upper)
}

func TestSimulateDensity(t *testing.T) {

	pop := makePopulation(t, 4000)

	r, err := Simulate(Params{Seed: 2, Design: DesignDensity, Scheme: SchemeSRS, Ratio: 1}, pop)
	require.NoError(t, err)

	set, err := r.Sample.Col("Set")
	require.NoError(t, err)
	fail, err := r.Sample.Col("Fail")
	require.NoError(t, err)
	tm, err := r.Sample.Col("time")
	require.NoError(t, err)

	// Risk-set eligibility holds in the analyzed sample.
	caseTime := make(map[float64]float64)
	for i := range set {
		if fail[i] == 1 {
			caseTime[set[i]] = tm[i]
		}
	}
	for i := range set {
		if fail[i] == 0 {
			assert.GreaterOrEqual(t, tm[i], caseTime[set[i]])
		}
	}

	assert.Greater(t, r.Estimate, 0.0)
	assert.LessOrEqual(t, r.Lower, r.Estimate)
	assert.LessOrEqual(t, r.Estimate, r.Upper)
}

func TestSimulateIdempotent(t *testing.T) {

	pop := makePopulation(t, 3000)

	for _, p := range []Params{
		{Seed: 9, Design: DesignCumulative, Scheme: SchemeSRS, Ratio: 1},
		{Seed: 9, Design: DesignCumulative, Scheme: SchemeStratified, Ratio: 1},
		{Seed: 9, Design: DesignDensity, Scheme: SchemeSRS, Ratio: 1},
	} {
		r1, err := Simulate(p, pop)
		require.NoError(t, err, "%+v", p)
		r2, err := Simulate(p, pop)
		require.NoError(t, err, "%+v", p)

		assert.Equal(t, r1.Estimate, r2.Estimate)
		assert.Equal(t, r1.Lower, r2.Lower)
		assert.Equal(t, r1.Upper, r2.Upper)

		require.Equal(t, r1.Sample.NumRow(), r2.Sample.NumRow())
		for _, na := range r1.Sample.Names() {
			v1, _ := r1.Sample.Col(na)
			v2, _ := r2.Sample.Col(na)
			assert.Equal(t, v1, v2, "%+v column %s", p, na)
		}
	}
}

func TestSimulateLeavesPopulationIntact(t *testing.T) {

	pop := makePopulation(t, 2000)
	before := pop.Names()
	nbefore := len(before)

	_, err := Simulate(Params{Seed: 3, Design: DesignCumulative, Scheme: SchemeSRS, Ratio: 1}, pop)
	require.NoError(t, err)

	// No sample columns leak onto the shared population.
	assert.Len(t, pop.Names(), nbefore)
	_, err = pop.Col("sampweight")
	assert.Error(t, err)
	_, err = pop.Col("icept")
	assert.Error(t, err)
}

func TestSimulateBadParams(t *testing.T) {

	pop := makePopulation(t, 2000)

	// Ratio below one.
	_, err := Simulate(Params{Seed: 1, Design: DesignCumulative, Scheme: SchemeSRS, Ratio: 0.5}, pop)
	require.Error(t, err)

	// Ratio asking for more controls than exist fails, never
	// clamps.
	_, err = Simulate(Params{Seed: 1, Design: DesignCumulative, Scheme: SchemeSRS, Ratio: 1000}, pop)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientCandidates))

	// Unknown design value.
	_, err = Simulate(Params{Seed: 1, Design: Design(99), Scheme: SchemeSRS, Ratio: 1}, pop)
	require.Error(t, err)
}
