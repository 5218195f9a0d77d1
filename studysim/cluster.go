package studysim

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/yadevi/case-control/popsim"
)

// group partitions the given rows by the value of a population column,
// returning the distinct values in sorted order and the member rows of
// each group.
func group(pop *popsim.Population, rows []int, name string) ([]float64, [][]int, error) {

	v, err := pop.Col(name)
	if err != nil {
		return nil, nil, err
	}

	gm := make(map[float64][]int)
	for _, r := range rows {
		gm[v[r]] = append(gm[v[r]], r)
	}

	keys := make([]float64, 0, len(gm))
	for k := range gm {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	members := make([][]int, len(keys))
	for i, k := range keys {
		members[i] = gm[k]
	}

	return keys, members, nil
}

// SingleStageCluster samples whole primary sampling units with
// probability proportional to size and takes every control inside a
// sampled cluster.  The cluster-level weight, the inverse of the
// cluster inclusion probability, applies uniformly to all members.
type SingleStageCluster struct{}

func (SingleStageCluster) Name() string { return "clustered_single_stage" }

func (SingleStageCluster) Select(pop *popsim.Population, controls []int, target int, rng *rand.Rand) ([]int, []float64, error) {

	_, members, err := group(pop, controls, "cluster")
	if err != nil {
		return nil, nil, err
	}

	// Taking everyone in a sampled cluster overshoots, so aim for
	// half as many clusters as the target naively implies.
	mean := float64(len(controls)) / float64(len(members))
	nclust := int(math.Round(float64(target) / mean / 2))
	if nclust < 1 {
		nclust = 1
	}
	if nclust > len(members) {
		return nil, nil, fmt.Errorf("%w: need %d clusters, population has %d",
			ErrInsufficientCandidates, nclust, len(members))
	}

	share := make([]float64, len(members))
	for i, m := range members {
		share[i] = float64(len(m)) / float64(len(controls))
	}

	var sel []int
	var wt []float64
	for _, j := range weightedDraw(share, nclust, rng) {
		// PPS inclusion probability, capped at 1 for clusters
		// large enough to be certainties.
		pi := math.Min(1, float64(nclust)*share[j])
		for _, r := range members[j] {
			sel = append(sel, r)
			wt = append(wt, 1/pi)
		}
	}

	return sel, wt, nil
}

// TwoStageCluster samples a fixed number of secondary geographic units
// proportional to size, then an equal-size simple random sample of
// controls within each sampled unit.  The per-unit take is the target
// divided by the unit count, rounded, so the total drawn matches the
// target to within half the unit count.  Weights multiply the inverse
// probabilities of the two stages.
type TwoStageCluster struct {
	// NumClusters is the fixed number of units sampled at the
	// first stage.
	NumClusters int
}

func (TwoStageCluster) Name() string { return "clustered_two_stage" }

func (ts TwoStageCluster) Select(pop *popsim.Population, controls []int, target int, rng *rand.Rand) ([]int, []float64, error) {

	keys, members, err := group(pop, controls, "puma")
	if err != nil {
		return nil, nil, err
	}

	nclust := ts.NumClusters
	if nclust < 1 {
		return nil, nil, fmt.Errorf("two-stage cluster sampling with %d clusters", nclust)
	}
	if nclust > len(members) {
		return nil, nil, fmt.Errorf("%w: need %d secondary clusters, population has %d",
			ErrInsufficientCandidates, nclust, len(members))
	}

	take := int(math.Round(float64(target) / float64(nclust)))
	if take < 1 {
		return nil, nil, fmt.Errorf("%w: target %d spread over %d clusters leaves nothing to draw per cluster",
			ErrInsufficientCandidates, target, nclust)
	}

	share := make([]float64, len(members))
	for i, m := range members {
		share[i] = float64(len(m)) / float64(len(controls))
	}

	var sel []int
	var wt []float64
	for _, j := range weightedDraw(share, nclust, rng) {
		m := members[j]
		if take > len(m) {
			return nil, nil, fmt.Errorf("%w: cluster %v has %d controls, need %d",
				ErrInsufficientCandidates, keys[j], len(m), take)
		}

		pi := math.Min(1, float64(nclust)*share[j])
		pw := float64(take) / float64(len(m))

		pm := rng.Perm(len(m))
		for i := 0; i < take; i++ {
			sel = append(sel, m[pm[i]])
			wt = append(wt, 1/(pi*pw))
		}
	}

	return sel, wt, nil
}
