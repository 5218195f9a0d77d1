/*
Package studysim draws case-control study samples from a synthetic
population and fits the design-appropriate weighted estimator,
returning the exposure effect estimate with a 95% confidence interval.
*/
package studysim

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes a single simulation can hit.
var (
	// ErrUnsupportedScheme marks a sampling scheme that is a
	// recognized name but has no implementation.
	ErrUnsupportedScheme = errors.New("unsupported sampling scheme")

	// ErrInsufficientCandidates marks a stratum, cluster, or risk
	// set with too few eligible units to draw the requested count.
	ErrInsufficientCandidates = errors.New("not enough eligible candidates")

	// ErrFit marks a model fit that failed or produced undefined
	// standard errors.
	ErrFit = errors.New("model fit failed")
)

// Scheme selects the control sampling strategy.
type Scheme int

const (
	SchemeSRS Scheme = iota
	SchemeSPS
	SchemeClusterOneStage
	SchemeClusterTwoStage
	SchemeStratified
)

var schemeNames = map[Scheme]string{
	SchemeSRS:             "srs",
	SchemeSPS:             "sps",
	SchemeClusterOneStage: "clustered_single_stage",
	SchemeClusterTwoStage: "clustered_two_stage",
	SchemeStratified:      "stratified",
}

func (s Scheme) String() string {
	if na, ok := schemeNames[s]; ok {
		return na
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme maps a scheme name to its value.  The reserved names
// "acs" and "nhanes" are recognized but unimplemented and return
// ErrUnsupportedScheme; unknown names are a configuration error.
func ParseScheme(name string) (Scheme, error) {

	for s, na := range schemeNames {
		if na == name {
			return s, nil
		}
	}

	switch name {
	case "acs", "nhanes":
		return 0, fmt.Errorf("%w: %q is a reserved placeholder", ErrUnsupportedScheme, name)
	}

	return 0, fmt.Errorf("unknown sampling scheme %q", name)
}

// Design selects the case-control design.
type Design int

const (
	DesignCumulative Design = iota
	DesignDensity
)

func (d Design) String() string {
	switch d {
	case DesignCumulative:
		return "cumulative"
	case DesignDensity:
		return "density"
	}
	return fmt.Sprintf("Design(%d)", int(d))
}

// ParseDesign maps a design name to its value.
func ParseDesign(name string) (Design, error) {
	switch name {
	case "cumulative":
		return DesignCumulative, nil
	case "density":
		return DesignDensity, nil
	}
	return 0, fmt.Errorf("unknown design %q", name)
}
