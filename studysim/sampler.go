package studysim

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/yadevi/case-control/popsim"
)

// A ControlSampler selects control rows from the population and
// computes the inverse-probability sampling weight for each selected
// row.  controls holds the population row indices of all non-cases;
// the returned index and weight slices are aligned.
type ControlSampler interface {
	Name() string
	Select(pop *popsim.Population, controls []int, target int, rng *rand.Rand) ([]int, []float64, error)
}

// NewControlSampler returns the sampler for a scheme.
func NewControlSampler(s Scheme) (ControlSampler, error) {
	switch s {
	case SchemeSRS:
		return SimpleRandom{}, nil
	case SchemeSPS:
		return ProbabilityWeighted{}, nil
	case SchemeClusterOneStage:
		return SingleStageCluster{}, nil
	case SchemeClusterTwoStage:
		return TwoStageCluster{NumClusters: 30}, nil
	case SchemeStratified:
		return Stratified{NumStrata: 10}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedScheme, s)
}

// SimpleRandom draws an unweighted simple random sample of controls
// without replacement.  Every sampled control gets the same weight,
// the inverse of the common selection probability.
type SimpleRandom struct{}

func (SimpleRandom) Name() string { return "srs" }

func (SimpleRandom) Select(pop *popsim.Population, controls []int, target int, rng *rand.Rand) ([]int, []float64, error) {

	if target > len(controls) {
		return nil, nil, fmt.Errorf("%w: srs needs %d controls, population has %d",
			ErrInsufficientCandidates, target, len(controls))
	}

	pm := rng.Perm(len(controls))
	sel := make([]int, target)
	wt := make([]float64, target)
	w := float64(len(controls)) / float64(target)
	for i := 0; i < target; i++ {
		sel[i] = controls[pm[i]]
		wt[i] = w
	}

	return sel, wt, nil
}

// ProbabilityWeighted assigns each control an independent uniform(0,1)
// selection probability, samples without replacement proportional to
// those probabilities, and weights each sampled unit by the inverse of
// its assigned probability.
type ProbabilityWeighted struct{}

func (ProbabilityWeighted) Name() string { return "sps" }

func (ProbabilityWeighted) Select(pop *popsim.Population, controls []int, target int, rng *rand.Rand) ([]int, []float64, error) {

	if target > len(controls) {
		return nil, nil, fmt.Errorf("%w: sps needs %d controls, population has %d",
			ErrInsufficientCandidates, target, len(controls))
	}

	pr := make([]float64, len(controls))
	for i := range pr {
		pr[i] = rng.Float64()
	}

	pos := weightedDraw(pr, target, rng)

	sel := make([]int, target)
	wt := make([]float64, target)
	for i, j := range pos {
		sel[i] = controls[j]
		wt[i] = 1 / pr[j]
	}

	return sel, wt, nil
}

// weightedDraw samples n positions from 0..len(w)-1 without
// replacement, with selection probability proportional to w.  The
// weights must be positive.  Uses exponential sort keys so a single
// pass of uniforms suffices.
func weightedDraw(w []float64, n int, rng *rand.Rand) []int {

	type kv struct {
		key float64
		pos int
	}

	ks := make([]kv, len(w))
	for i, wi := range w {
		// Larger key = earlier selection; u^(1/w) is the
		// standard reservoir key for weighted sampling.
		ks[i] = kv{key: math.Pow(rng.Float64(), 1/wi), pos: i}
	}

	sort.Slice(ks, func(i, j int) bool {
		if ks[i].key != ks[j].key {
			return ks[i].key > ks[j].key
		}
		return ks[i].pos < ks[j].pos
	})

	pos := make([]int, n)
	for i := 0; i < n; i++ {
		pos[i] = ks[i].pos
	}

	return pos
}
