package studysim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yadevi/case-control/popsim"
)

// makePopulation synthesizes a population of exactly n individuals for
// sampler and estimator tests.  The extract holds n records with
// person weights cycling 1,2,3, so the weighted expansion is always
// large enough for the requested draw.  The baseline hazard is raised
// well above the default so that even small populations contain plenty
// of cases.
func makePopulation(t *testing.T, n int) *popsim.Population {
	t.Helper()

	cols := make(map[string][]float64)
	add := func(na string, f func(i int) float64) {
		v := make([]float64, n)
		for i := range v {
			v[i] = f(i)
		}
		cols[na] = v
	}

	races := []float64{100, 100, 100, 200, 651, 300, 805}
	hisps := []float64{0, 0, 0, 0, 100, 0, 901}
	educs := []float64{10, 40, 73, 81, 92, 111, 125}

	add("CLUSTER", func(i int) float64 { return float64(1 + i%40) })
	add("STRATA", func(i int) float64 { return float64(1 + i%8) })
	add("SERIAL", func(i int) float64 { return float64(i + 1) })
	add("PERWT", func(i int) float64 { return float64(1 + i%3) })
	add("COUNTY", func(i int) float64 { return float64(1 + i%25) })
	add("CITY", func(i int) float64 { return float64(1 + i%60) })
	add("PUMA", func(i int) float64 { return float64(1 + i%50) })
	add("METFIPS", func(i int) float64 { return float64(1 + i%12) })
	add("SEX", func(i int) float64 { return float64(1 + i%2) })
	add("AGE", func(i int) float64 { return float64(18 + i%70) })
	add("EDUC", func(i int) float64 { return educs[i%len(educs)] })
	add("RACE", func(i int) float64 { return races[i%len(races)] })
	add("HISPAN", func(i int) float64 { return hisps[i%len(hisps)] })

	ex, err := popsim.NewExtract(cols)
	require.NoError(t, err)

	hm := popsim.DefaultOutcomeModel()
	hm.BaseLogHazard = -10.0

	pop, err := popsim.Synthesize(ex, n, popsim.Seeds{Sample: 1, Exposure: 2, Outcome: 3},
		popsim.DefaultExposureModel(), hm)
	require.NoError(t, err)
	require.Equal(t, n, pop.NumRow())
	return pop
}

// partition returns the case and control row indices of a population.
func partition(t *testing.T, pop *popsim.Population) ([]int, []int) {
	t.Helper()

	y, err := pop.Col("Y")
	require.NoError(t, err)

	var cases, controls []int
	for i := range y {
		if y[i] == 1 {
			cases = append(cases, i)
		} else {
			controls = append(controls, i)
		}
	}
	require.NotEmpty(t, cases)
	require.NotEmpty(t, controls)
	return cases, controls
}
