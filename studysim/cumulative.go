package studysim

import (
	"fmt"

	"github.com/kshedden/statmodel/glm"

	"github.com/yadevi/case-control/popsim"
)

// fitCumulative fits a weighted logistic regression of the case
// indicator on the exposure and covariates, with weights equal to the
// sampling weights.  The exponentiated exposure coefficient estimates
// the odds ratio.
func fitCumulative(sample *popsim.Population) (*Fit, error) {

	ic := make([]float64, sample.NumRow())
	for i := range ic {
		ic[i] = 1
	}
	if err := sample.AddCol("icept", ic); err != nil {
		return nil, err
	}

	xnames := []string{"icept", "A"}
	xnames = append(xnames, popsim.Covariates()...)

	config := glm.DefaultConfig()
	config.Family = glm.NewFamily(glm.BinomialFamily)
	config.WeightVar = "sampweight"

	model, err := glm.NewGLM(sample.Dataset(), "Y", xnames, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFit, err)
	}

	result := model.Fit()

	return &Fit{
		Names:   xnames,
		Params:  result.Params(),
		StdErr:  result.StdErr(),
		Summary: fmt.Sprintf("%v", result.Summary()),
	}, nil
}
