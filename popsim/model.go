package popsim

import (
	"math"
	"sort"
)

// Horizon is the administrative censoring time: ten years, in days.
const Horizon = 3652.5

// LogisticModel gives the data generating process for the binary
// exposure: a baseline log odds plus a log odds ratio per covariate.
type LogisticModel struct {
	Intercept float64            `yaml:"intercept"`
	Effects   map[string]float64 `yaml:"effects"`
}

// HazardModel gives the data generating process for the event time: a
// baseline log hazard, a log rate ratio for the exposure, and a log
// rate ratio per covariate.  Event times are exponential with rate
// exp(linear predictor).
type HazardModel struct {
	BaseLogHazard float64            `yaml:"base_log_hazard"`
	LogRateRatio  float64            `yaml:"log_rate_ratio"`
	Effects       map[string]float64 `yaml:"effects"`
}

// DefaultExposureModel returns the fixed coefficient table used to
// simulate the exposure.  Under these coefficients the exposure
// prevalence in the synthetic population is approximately 48%.
func DefaultExposureModel() *LogisticModel {
	return &LogisticModel{
		Intercept: -0.35,
		Effects: map[string]float64{
			"male":      0.25,
			"black":     0.20,
			"asian":     -0.15,
			"hisp":      0.10,
			"othrace":   0.05,
			"age2534":   0.05,
			"age3544":   0.10,
			"age4554":   0.15,
			"age5564":   0.20,
			"age65p":    0.25,
			"edsomehs":  -0.05,
			"edhs":      -0.10,
			"edsomecol": -0.15,
			"edassoc":   -0.20,
			"edba":      -0.25,
			"edgrad":    -0.30,
		},
	}
}

// DefaultOutcomeModel returns the fixed coefficient table used to
// simulate the event time.  The true exposure rate ratio is 2, and the
// ten year cumulative incidence is approximately 2%.
func DefaultOutcomeModel() *HazardModel {
	return &HazardModel{
		BaseLogHazard: -13.3,
		LogRateRatio:  math.Log(2),
		Effects: map[string]float64{
			"male":      0.15,
			"black":     0.25,
			"asian":     -0.10,
			"hisp":      0.05,
			"othrace":   0.10,
			"age2534":   0.20,
			"age3544":   0.40,
			"age4554":   0.60,
			"age5564":   0.80,
			"age65p":    1.00,
			"edsomehs":  0.05,
			"edhs":      0.00,
			"edsomecol": -0.05,
			"edassoc":   -0.10,
			"edba":      -0.15,
			"edgrad":    -0.20,
		},
	}
}

// sortedKeys returns the effect names in a fixed order so that the
// linear predictor is reproducible across runs.
func sortedKeys(m map[string]float64) []string {
	var v []string
	for k := range m {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

// linpred evaluates intercept + sum of effects over the named columns
// of the population, for every row.
func linpred(p *Population, icept float64, effects map[string]float64) ([]float64, error) {

	lp := make([]float64, p.NumRow())
	for i := range lp {
		lp[i] = icept
	}

	for _, na := range sortedKeys(effects) {
		x, err := p.Col(na)
		if err != nil {
			return nil, err
		}
		b := effects[na]
		for i := range lp {
			lp[i] += b * x[i]
		}
	}

	return lp, nil
}
