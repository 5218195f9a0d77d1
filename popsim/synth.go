/*
Package popsim builds a synthetic target population from a weighted
survey extract and simulates a binary exposure and a censored event
time on it, from fixed coefficient tables, so that the true
exposure/outcome association is known by construction.
*/
package popsim

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Seeds holds the three RNG seeds used during synthesis: one for the
// base population draw, one for the exposure draw, one for the outcome
// draw.  Fixing all three makes synthesis deterministic.
type Seeds struct {
	Sample   uint64 `yaml:"sample"`
	Exposure uint64 `yaml:"exposure"`
	Outcome  uint64 `yaml:"outcome"`
}

// Synthesize builds a population of n individuals from the extract.
// The extract is expanded by its person weights, an unweighted sample
// of n rows is drawn without replacement, covariates are recoded to
// one-hot indicators, and the exposure A and outcome (Y, time) are
// simulated from the given coefficient tables.
func Synthesize(ex *Extract, n int, seeds Seeds, em *LogisticModel, hm *HazardModel) (*Population, error) {

	if n <= 0 {
		return nil, fmt.Errorf("popsim: population size %d", n)
	}

	ix := ex.expandIndex()
	if n > len(ix) {
		return nil, fmt.Errorf("popsim: requested %d individuals, weighted extract has %d", n, len(ix))
	}

	// Base draw: n expanded rows without replacement.
	rng := rand.New(rand.NewSource(seeds.Sample))
	pm := rng.Perm(len(ix))
	rows := make([]int, n)
	for i := 0; i < n; i++ {
		rows[i] = ix[pm[i]]
	}

	pop, err := assemble(ex, rows)
	if err != nil {
		return nil, err
	}

	if err := simulateExposure(pop, seeds.Exposure, em); err != nil {
		return nil, err
	}
	if err := simulateOutcome(pop, seeds.Outcome, hm); err != nil {
		return nil, err
	}

	return pop, nil
}

// assemble builds the covariate columns of the population from the
// selected extract rows.
func assemble(ex *Extract, rows []int) (*Population, error) {

	n := len(rows)

	var names []string
	var cols [][]float64
	add := func(na string) []float64 {
		v := make([]float64, n)
		names = append(names, na)
		cols = append(cols, v)
		return v
	}

	// Survey design and geography identifiers pass through.
	src := []string{"CLUSTER", "STRATA", "SERIAL", "COUNTY", "CITY", "PUMA", "METFIPS"}
	for k, na := range idNames {
		v := add(na)
		raw := ex.cols[src[k]]
		for i, r := range rows {
			v[i] = raw[r]
		}
	}

	male := add("male")
	sex := ex.cols["SEX"]
	for i, r := range rows {
		// Survey coding: 1 male, 2 female.
		if sex[r] == 1 {
			male[i] = 1
		}
	}

	race := make([][]float64, len(raceNames))
	for k, na := range raceNames {
		race[k] = add(na)
	}
	rc := ex.cols["RACE"]
	hc := ex.cols["HISPAN"]
	for i, r := range rows {
		race[raceGroup(rc[r], hc[r])][i] = 1
	}

	age := make([][]float64, len(ageNames))
	for k, na := range ageNames {
		age[k] = add(na)
	}
	av := ex.cols["AGE"]
	for i, r := range rows {
		age[ageGroup(av[r])][i] = 1
	}

	educ := make([][]float64, len(educNames))
	for k, na := range educNames {
		educ[k] = add(na)
	}
	ev := ex.cols["EDUC"]
	for i, r := range rows {
		educ[educGroup(ev[r])][i] = 1
	}

	return NewPopulation(names, cols)
}

// simulateExposure draws the binary exposure A from a logistic model
// of the covariates.
func simulateExposure(pop *Population, seed uint64, em *LogisticModel) error {

	lp, err := linpred(pop, em.Intercept, em.Effects)
	if err != nil {
		return err
	}

	src := rand.NewSource(seed)
	a := make([]float64, pop.NumRow())
	for i, z := range lp {
		b := distuv.Bernoulli{P: 1 / (1 + math.Exp(-z)), Src: src}
		a[i] = b.Rand()
	}

	return pop.AddCol("A", a)
}

// simulateOutcome draws an exponential event time whose rate depends
// on the exposure and covariates, then censors at the follow-up
// horizon: Y=1 iff the event occurs within the horizon, and censored
// times are set to the horizon.
func simulateOutcome(pop *Population, seed uint64, hm *HazardModel) error {

	lp, err := linpred(pop, hm.BaseLogHazard, hm.Effects)
	if err != nil {
		return err
	}
	a, err := pop.Col("A")
	if err != nil {
		return err
	}

	src := rand.NewSource(seed)
	n := pop.NumRow()
	y := make([]float64, n)
	tm := make([]float64, n)
	for i := range lp {
		lam := math.Exp(lp[i] + hm.LogRateRatio*a[i])
		t := distuv.Exponential{Rate: lam, Src: src}.Rand()
		if t <= Horizon {
			y[i] = 1
			tm[i] = t
		} else {
			tm[i] = Horizon
		}
	}

	if err := pop.AddCol("Y", y); err != nil {
		return err
	}
	return pop.AddCol("time", tm)
}
