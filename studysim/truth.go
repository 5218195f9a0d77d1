package studysim

import (
	"fmt"

	"github.com/kshedden/statmodel/duration"
	"github.com/kshedden/statmodel/glm"

	"github.com/yadevi/case-control/popsim"
)

// TrueOddsRatio fits an unweighted logistic regression on the full
// population, the benchmark that cumulative design estimates are
// compared against.  Returns the exposure odds ratio with its 95%
// interval.
func TrueOddsRatio(pop *popsim.Population) (float64, float64, float64, error) {

	// Work on a copy so the shared population stays pristine.
	rows := make([]int, pop.NumRow())
	for i := range rows {
		rows[i] = i
	}
	da := pop.Subset(rows)

	ic := make([]float64, da.NumRow())
	for i := range ic {
		ic[i] = 1
	}
	if err := da.AddCol("icept", ic); err != nil {
		return 0, 0, 0, err
	}

	xnames := []string{"icept", "A"}
	xnames = append(xnames, popsim.Covariates()...)

	config := glm.DefaultConfig()
	config.Family = glm.NewFamily(glm.BinomialFamily)

	model, err := glm.NewGLM(da.Dataset(), "Y", xnames, config)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrFit, err)
	}
	result := model.Fit()

	fit := &Fit{Names: xnames, Params: result.Params(), StdErr: result.StdErr()}
	b, se, err := fit.Coef("A")
	if err != nil {
		return 0, 0, 0, err
	}
	return wald(b, se)
}

// TrueRateRatio fits a proportional hazards regression on the full
// population event times, the benchmark for density design estimates.
func TrueRateRatio(pop *popsim.Population) (float64, float64, float64, error) {

	rows := make([]int, pop.NumRow())
	for i := range rows {
		rows[i] = i
	}
	da := pop.Subset(rows)

	xnames := []string{"A"}
	xnames = append(xnames, popsim.Covariates()...)

	model, err := duration.NewPHReg(da.Dataset(), "time", "Y", xnames, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrFit, err)
	}
	result, err := model.Fit()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrFit, err)
	}

	fit := &Fit{Names: xnames, Params: result.Params(), StdErr: result.StdErr()}
	b, se, err := fit.Coef("A")
	if err != nil {
		return 0, 0, 0, err
	}
	return wald(b, se)
}
