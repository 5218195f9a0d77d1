package studysim

import (
	"fmt"

	"github.com/kshedden/statmodel/duration"

	"github.com/yadevi/case-control/popsim"
)

// EventDist estimates the survival function of the event time in the
// population (Kaplan-Meier, censoring at the follow-up horizon).
// Returns the distinct event times and the survival probability at
// each.  Useful for checking the outcome prevalence and the spread of
// case event times before running studies.
func EventDist(pop *popsim.Population) ([]float64, []float64, error) {

	sf, err := duration.NewSurvfuncRight(pop.Dataset(), "time", "Y", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFit, err)
	}

	return sf.Time(), sf.SurvProb(), nil
}
