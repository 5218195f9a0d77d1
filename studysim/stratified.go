package studysim

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/yadevi/case-control/popsim"
)

// Stratified partitions the controls into strata by cutting a
// geographic code into quantile groups, allocates the control sample
// proportionally to stratum size, and draws a simple random sample
// within each stratum.  The stratum weight is stratum population size
// over stratum sample size.
type Stratified struct {
	// NumStrata is the number of quantile groups; ten gives
	// deciles.
	NumStrata int
}

func (Stratified) Name() string { return "stratified" }

func (st Stratified) Select(pop *popsim.Population, controls []int, target int, rng *rand.Rand) ([]int, []float64, error) {

	if st.NumStrata < 2 {
		return nil, nil, fmt.Errorf("stratified sampling with %d strata", st.NumStrata)
	}
	if target > len(controls) {
		return nil, nil, fmt.Errorf("%w: stratified needs %d controls, population has %d",
			ErrInsufficientCandidates, target, len(controls))
	}

	county, err := pop.Col("county")
	if err != nil {
		return nil, nil, err
	}

	strata := cutQuantiles(county, controls, st.NumStrata)

	// Proportional allocation: floor everywhere, then hand out the
	// remainder by largest fractional part.
	alloc, err := allocate(strata, target)
	if err != nil {
		return nil, nil, err
	}

	var sel []int
	var wt []float64
	for h, m := range strata {
		nh := alloc[h]
		if nh > len(m) {
			return nil, nil, fmt.Errorf("%w: stratum %d has %d controls, allocation needs %d",
				ErrInsufficientCandidates, h, len(m), nh)
		}
		if nh == 0 {
			continue
		}

		w := float64(len(m)) / float64(nh)
		pm := rng.Perm(len(m))
		for i := 0; i < nh; i++ {
			sel = append(sel, m[pm[i]])
			wt = append(wt, w)
		}
	}

	return sel, wt, nil
}

// cutQuantiles splits the rows into k groups by quantiles of the given
// values.  Rows with tied values always land in the same group, so
// heavy ties can leave some groups larger than others.
func cutQuantiles(v []float64, rows []int, k int) [][]int {

	ord := make([]int, len(rows))
	copy(ord, rows)
	sort.SliceStable(ord, func(i, j int) bool { return v[ord[i]] < v[ord[j]] })

	strata := make([][]int, k)
	n := len(ord)
	prev := 0
	for i, r := range ord {
		h := i * k / n
		// Tied values always share a group.
		if i > 0 && v[r] == v[ord[i-1]] {
			h = prev
		}
		prev = h
		strata[h] = append(strata[h], r)
	}

	// Drop empty trailing groups created by ties.
	var out [][]int
	for _, m := range strata {
		if len(m) > 0 {
			out = append(out, m)
		}
	}

	return out
}

// allocate distributes the target across strata proportionally to
// stratum size, exactly summing to the target.
func allocate(strata [][]int, target int) ([]int, error) {

	ntot := 0
	for h, m := range strata {
		if len(m) == 0 {
			return nil, fmt.Errorf("%w: stratum %d is empty", ErrInsufficientCandidates, h)
		}
		ntot += len(m)
	}

	type frac struct {
		h int
		f float64
	}

	alloc := make([]int, len(strata))
	var fr []frac
	used := 0
	for h, m := range strata {
		x := float64(target) * float64(len(m)) / float64(ntot)
		alloc[h] = int(x)
		used += alloc[h]
		fr = append(fr, frac{h, x - float64(alloc[h])})
	}

	sort.Slice(fr, func(i, j int) bool {
		if fr[i].f != fr[j].f {
			return fr[i].f > fr[j].f
		}
		return fr[i].h < fr[j].h
	})

	for i := 0; used < target; i++ {
		alloc[fr[i].h]++
		used++
	}

	return alloc, nil
}
