package studysim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/yadevi/case-control/popsim"
)

// smallCohort builds a cohort with chosen case times.  Controls are
// censored at the horizon.
func smallCohort(t *testing.T, caseTimes []float64, ncontrol int) *popsim.Population {
	t.Helper()

	var y, tm []float64
	for _, ct := range caseTimes {
		y = append(y, 1)
		tm = append(tm, ct)
	}
	for i := 0; i < ncontrol; i++ {
		y = append(y, 0)
		tm = append(tm, popsim.Horizon)
	}

	pop, err := popsim.NewPopulation([]string{"Y", "time"}, [][]float64{y, tm})
	require.NoError(t, err)
	return pop
}

func TestBuildRiskSets(t *testing.T) {

	cohort := smallCohort(t, []float64{500, 200, 900, 200}, 10)
	tm, _ := cohort.Col("time")
	y, _ := cohort.Col("Y")

	m := 2
	rows, set, fail, err := buildRiskSets(cohort, m, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	// One set per case, each of size m+1.
	require.Len(t, rows, 4*(m+1))
	require.Len(t, set, len(rows))
	require.Len(t, fail, len(rows))

	// Exactly one failure per set, and every control in a set was
	// still at risk at the case's event time.
	caseTime := make(map[float64]float64)
	nfail := make(map[float64]int)
	for i, r := range rows {
		if fail[i] == 1 {
			nfail[set[i]]++
			require.Equal(t, 1.0, y[r])
			caseTime[set[i]] = tm[r]
		}
	}
	require.Len(t, nfail, 4)
	for s, k := range nfail {
		assert.Equal(t, 1, k, "set %v", s)
	}
	for i, r := range rows {
		if fail[i] == 0 {
			assert.GreaterOrEqual(t, tm[r], caseTime[set[i]],
				"set %v control %d left risk before the event", set[i], r)
		}
	}

	// Sets are ordered by case event time; the two tied cases keep
	// their row order.
	assert.Equal(t, []float64{200, 200, 500, 900},
		[]float64{caseTime[0], caseTime[1], caseTime[2], caseTime[3]})

	// No set uses its own case as a control.
	caseRow := make(map[float64]int)
	for i, r := range rows {
		if fail[i] == 1 {
			caseRow[set[i]] = r
		}
	}
	for i, r := range rows {
		if fail[i] == 0 {
			assert.NotEqual(t, caseRow[set[i]], r)
		}
	}
}

func TestBuildRiskSetsDeterministic(t *testing.T) {

	cohort := smallCohort(t, []float64{100, 300, 700}, 20)

	r1, s1, f1, err := buildRiskSets(cohort, 3, rand.New(rand.NewSource(21)))
	require.NoError(t, err)
	r2, s2, f2, err := buildRiskSets(cohort, 3, rand.New(rand.NewSource(21)))
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, f1, f2)
}

func TestBuildRiskSetsInsufficient(t *testing.T) {

	// One case, one control, but three controls per set requested.
	cohort := smallCohort(t, []float64{100}, 1)
	_, _, _, err := buildRiskSets(cohort, 3, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientCandidates))
}
