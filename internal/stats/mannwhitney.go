package stats

import (
	"fmt"
	"math"
	"sort"
)

// MannWhitneyU runs the two-sided Mann-Whitney U test using the normal
// approximation with tie and continuity corrections (the large-sample
// path; the cohorts this pipeline compares are always well above the
// exact-enumeration sizes). The returned statistic is U for the first
// sample.
func MannWhitneyU(x, y []float64) (u, p float64, err error) {
	nx, ny := len(x), len(y)
	if nx == 0 || ny == 0 {
		return 0, 0, fmt.Errorf("%w: Mann-Whitney needs non-empty groups", ErrSampleSize)
	}

	ranks, tieTerm := midRanks(x, y)

	var r1 float64
	for i := 0; i < nx; i++ {
		r1 += ranks[i]
	}
	u = r1 - float64(nx)*float64(nx+1)/2

	fnx, fny := float64(nx), float64(ny)
	n := fnx + fny
	mu := fnx * fny / 2

	sigmaSq := fnx * fny / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if sigmaSq <= 0 {
		// every value tied across both groups
		return u, 1, nil
	}
	sigma := math.Sqrt(sigmaSq)

	// continuity correction toward the mean
	diff := u - mu
	var cc float64
	switch {
	case diff > 0:
		cc = -0.5
	case diff < 0:
		cc = 0.5
	}
	z := (diff + cc) / sigma

	p = 2 * stdNormal.Survival(math.Abs(z))
	return u, clamp01(p), nil
}

// midRanks ranks the concatenation of x and y with average ranks for
// ties, returning the ranks in input order (x first) and the tie
// correction term sum(t³ - t).
func midRanks(x, y []float64) (ranks []float64, tieTerm float64) {
	n := len(x) + len(y)
	idx := make([]int, n)
	vals := make([]float64, n)
	copy(vals, x)
	copy(vals[len(x):], y)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && vals[idx[j+1]] == vals[idx[i]] {
			j++
		}
		// positions i..j share the value; assign the average rank
		avg := (float64(i+1) + float64(j+1)) / 2
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		if t := float64(j - i + 1); t > 1 {
			tieTerm += t*t*t - t
		}
		i = j + 1
	}
	return ranks, tieTerm
}
