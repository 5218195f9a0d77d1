package studysim

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/kshedden/statmodel/duration"

	"github.com/yadevi/case-control/popsim"
)

// buildRiskSets performs incidence-density matching on the cohort
// formed by the cases and the phase-1 sampled controls.  Each case, in
// order of event time (stable row order breaking ties), anchors one
// risk set: m controls are drawn without replacement from the cohort
// members still at risk at the case's event time.  Later cases and
// censored controls are eligible; the anchoring case itself is not.
//
// The returned row indices reference the cohort, so a member may
// appear in several sets.  fail marks the anchoring case within its
// set.
func buildRiskSets(cohort *popsim.Population, m int, rng *rand.Rand) (rows []int, set, fail []float64, err error) {

	y, err := cohort.Col("Y")
	if err != nil {
		return nil, nil, nil, err
	}
	tm, err := cohort.Col("time")
	if err != nil {
		return nil, nil, nil, err
	}

	var cases []int
	for i := range y {
		if y[i] == 1 {
			cases = append(cases, i)
		}
	}
	sort.SliceStable(cases, func(i, j int) bool { return tm[cases[i]] < tm[cases[j]] })

	for s, c := range cases {

		var atrisk []int
		for i := range tm {
			if i != c && tm[i] >= tm[c] {
				atrisk = append(atrisk, i)
			}
		}
		if len(atrisk) < m {
			return nil, nil, nil, fmt.Errorf("%w: risk set %d (event time %.1f) has %d eligible controls, need %d",
				ErrInsufficientCandidates, s, tm[c], len(atrisk), m)
		}

		rows = append(rows, c)
		set = append(set, float64(s))
		fail = append(fail, 1)

		pm := rng.Perm(len(atrisk))
		for k := 0; k < m; k++ {
			rows = append(rows, atrisk[pm[k]])
			set = append(set, float64(s))
			fail = append(fail, 0)
		}
	}

	return rows, set, fail, nil
}

// fitDensity assembles the matched risk-set sample and fits a weighted
// conditional logistic regression, stratified by risk set.  The
// conditional logistic likelihood is obtained as a stratified
// proportional hazards fit with unit event times, so the exponentiated
// exposure coefficient estimates the incidence density ratio.
func fitDensity(cohort *popsim.Population, m int, rng *rand.Rand) (*popsim.Population, *Fit, error) {

	rows, set, fail, err := buildRiskSets(cohort, m, rng)
	if err != nil {
		return nil, nil, err
	}

	sample := cohort.Subset(rows)
	if err := sample.AddCol("Set", set); err != nil {
		return nil, nil, err
	}
	if err := sample.AddCol("Fail", fail); err != nil {
		return nil, nil, err
	}

	one := make([]float64, sample.NumRow())
	for i := range one {
		one[i] = 1
	}
	if err := sample.AddCol("one", one); err != nil {
		return nil, nil, err
	}

	xnames := []string{"A"}
	xnames = append(xnames, popsim.Covariates()...)

	config := &duration.PHRegConfig{
		WeightVar: "sampweight",
		StrataVar: "Set",
	}

	model, err := duration.NewPHReg(sample.Dataset(), "one", "Fail", xnames, config)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFit, err)
	}

	result, err := model.Fit()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFit, err)
	}

	fit := &Fit{
		Names:   xnames,
		Params:  result.Params(),
		StdErr:  result.StdErr(),
		Summary: fmt.Sprintf("%v", result.Summary()),
	}

	return sample, fit, nil
}
