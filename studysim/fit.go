package studysim

import (
	"fmt"
	"math"
)

// Fit captures the fitted estimator: coefficient names, point
// estimates, and standard errors, plus the text summary from the
// underlying model.
type Fit struct {
	Names   []string
	Params  []float64
	StdErr  []float64
	Summary string
}

// Coef returns the coefficient and standard error for a named
// covariate.
func (f *Fit) Coef(name string) (float64, float64, error) {

	for i, na := range f.Names {
		if na == name {
			return f.Params[i], f.StdErr[i], nil
		}
	}
	return 0, 0, fmt.Errorf("%w: no coefficient for %q", ErrFit, name)
}

// wald exponentiates a coefficient and its two-sided 95% Wald limits.
// The standard error must be positive and finite; separation and
// failed convergence surface here as undefined standard errors.
func wald(b, se float64) (float64, float64, float64, error) {

	if math.IsNaN(b) || math.IsInf(b, 0) {
		return 0, 0, 0, fmt.Errorf("%w: undefined coefficient", ErrFit)
	}
	if math.IsNaN(se) || math.IsInf(se, 0) || se <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: undefined standard error", ErrFit)
	}

	est := math.Exp(b)
	lo := math.Exp(b - 1.96*se)
	hi := math.Exp(b + 1.96*se)
	return est, lo, hi, nil
}
