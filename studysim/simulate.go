package studysim

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/yadevi/case-control/popsim"
)

// phase2SeedOffset separates the phase-2 RNG stream (risk-set
// matching) from the phase-1 control selection stream, so reruns that
// vary only the estimator reuse the same control sample.
const phase2SeedOffset = 100

// Params configures one simulated study.
type Params struct {
	Seed   uint64
	Design Design
	Scheme Scheme

	// Ratio is the number of controls per case, at least 1.
	Ratio float64
}

// Result is the outcome of one simulated study.
type Result struct {
	// Sample is the analyzed study sample with sampling weights
	// (and, for the density design, risk-set columns).
	Sample *popsim.Population

	Fit *Fit

	// Estimate is the exponentiated exposure coefficient, with its
	// two-sided 95% Wald interval.
	Estimate float64
	Lower    float64
	Upper    float64
}

// Simulate draws one case-control study from the population and fits
// the design-appropriate estimator.  The population is read-only; the
// call is deterministic given its arguments and safe to run in
// parallel with other calls on the same population.
func Simulate(p Params, pop *popsim.Population) (*Result, error) {

	if p.Ratio < 1 {
		return nil, fmt.Errorf("control to case ratio %g, need at least 1", p.Ratio)
	}
	sampler, err := NewControlSampler(p.Scheme)
	if err != nil {
		return nil, err
	}

	y, err := pop.Col("Y")
	if err != nil {
		return nil, err
	}

	var cases, controls []int
	for i := range y {
		if y[i] == 1 {
			cases = append(cases, i)
		} else {
			controls = append(controls, i)
		}
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: population has no cases", ErrInsufficientCandidates)
	}

	// Phase 1: control selection, on its own seed.
	target := int(math.Round(p.Ratio * float64(len(cases))))
	rng := rand.New(rand.NewSource(p.Seed))
	sel, wt, err := sampler.Select(pop, controls, target, rng)
	if err != nil {
		return nil, fmt.Errorf("scheme %v: %w", p.Scheme, err)
	}

	rows := make([]int, 0, len(cases)+len(sel))
	rows = append(rows, cases...)
	rows = append(rows, sel...)

	weights := make([]float64, len(rows))
	for i := range cases {
		weights[i] = 1
	}
	copy(weights[len(cases):], wt)

	sample := pop.Subset(rows)
	if err := sample.AddCol("sampweight", weights); err != nil {
		return nil, err
	}

	// Phase 2: design-specific assembly and estimation, re-seeded.
	rng = rand.New(rand.NewSource(p.Seed + phase2SeedOffset))

	var fit *Fit
	switch p.Design {
	case DesignCumulative:
		fit, err = fitCumulative(sample)
	case DesignDensity:
		m := int(math.Round(p.Ratio))
		if m < 1 {
			m = 1
		}
		sample, fit, err = fitDensity(sample, m, rng)
	default:
		return nil, fmt.Errorf("unknown design %v", p.Design)
	}
	if err != nil {
		return nil, err
	}

	b, se, err := fit.Coef("A")
	if err != nil {
		return nil, err
	}
	est, lo, hi, err := wald(b, se)
	if err != nil {
		return nil, err
	}

	return &Result{
		Sample:   sample,
		Fit:      fit,
		Estimate: est,
		Lower:    lo,
		Upper:    hi,
	}, nil
}
