package poincare

import "math"

// PlaneAsymmetry is the two-dimensional histogram asymmetry of the
// Poincaré point cloud: the points are binned on a bins×bins grid with
// equal-width edges spanning [lower, upper] ms on both axes, and the
// index is the Frobenius norm of the normalized antisymmetric part of the
// count matrix, scaled by the norm of the fully one-sided reference
// matrix, in percent.
//
// This is the plane-histogram counterpart of HistogramAMI and shares its
// bin-count sensitivity; the sweep stage uses it as the cross-check
// variant. Points outside [lower, upper] on either axis are ignored. A
// perfectly transpose-symmetric count matrix, or an empty one, yields 0.
func PlaneAsymmetry(rr []float64, bins int, lower, upper float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	if bins < 2 {
		bins = 2
	}
	if upper <= lower {
		return 0, nil
	}

	p := newPlot(rr)
	width := (upper - lower) / float64(bins)
	counts := make([][]float64, bins)
	for i := range counts {
		counts[i] = make([]float64, bins)
	}

	binOf := func(v float64) (int, bool) {
		if v < lower || v > upper {
			return 0, false
		}
		i := int(math.Floor((v - lower) / width))
		if i >= bins {
			i = bins - 1
		}
		return i, true
	}

	any := false
	for k := range p.d {
		i, ok := binOf(p.x[k])
		if !ok {
			continue
		}
		j, ok := binOf(p.y[k])
		if !ok {
			continue
		}
		counts[i][j]++
		any = true
	}
	if !any {
		return 0, nil
	}

	// antisymmetric part, normalized by its largest magnitude
	var maxAbs float64
	for i := 0; i < bins; i++ {
		for j := 0; j < bins; j++ {
			if a := math.Abs(counts[i][j] - counts[j][i]); a > maxAbs {
				maxAbs = a
			}
		}
	}
	if maxAbs == 0 {
		return 0, nil
	}

	var frobSq float64
	for i := 0; i < bins; i++ {
		for j := 0; j < bins; j++ {
			v := (counts[i][j] - counts[j][i]) / maxAbs
			frobSq += v * v
		}
	}

	// the fully one-sided reference matrix (+1 above the diagonal, -1
	// below) has Frobenius norm sqrt(bins² - bins)
	frobMax := math.Sqrt(float64(bins*bins - bins))
	return math.Sqrt(frobSq) / frobMax * 100, nil
}
