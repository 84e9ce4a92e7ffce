// Package stats implements the group-comparison stage: normality testing,
// parametric/non-parametric test selection, effect sizes, and the tidy
// result rows the report and figure stages consume.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrSampleSize reports a sample outside a test's validity range.
var ErrSampleSize = errors.New("sample size out of range")

// ErrZeroRange reports an all-identical sample, for which the W statistic
// is undefined.
var ErrZeroRange = errors.New("sample has zero range")

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ShapiroWilk tests the null hypothesis that x was drawn from a normal
// distribution, using Royston's AS R94 approximation of the W statistic
// and its p-value. Valid for 3 <= n <= 5000.
func ShapiroWilk(x []float64) (w, p float64, err error) {
	n := len(x)
	if n < 3 || n > 5000 {
		return 0, 0, fmt.Errorf("%w: Shapiro-Wilk needs 3..5000 samples, got %d", ErrSampleSize, n)
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	if sorted[n-1] == sorted[0] {
		return 0, 0, ErrZeroRange
	}

	a := swWeights(n)

	var mean float64
	for _, v := range sorted {
		mean += v
	}
	mean /= float64(n)

	var num, ssq float64
	for i, v := range sorted {
		num += a[i] * v
		d := v - mean
		ssq += d * d
	}
	w = num * num / ssq
	if w > 1 {
		w = 1
	}

	p = swPValue(w, n)
	return w, p, nil
}

// swWeights builds the antisymmetric weight vector of the W statistic
// from the expected normal order statistics (Royston's approximation).
func swWeights(n int) []float64 {
	if n == 3 {
		s := math.Sqrt(0.5)
		return []float64{-s, 0, s}
	}

	m := make([]float64, n)
	var ssqM float64
	for i := 0; i < n; i++ {
		m[i] = stdNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssqM += m[i] * m[i]
	}
	rootSsqM := math.Sqrt(ssqM)
	u := 1 / math.Sqrt(float64(n))

	a := make([]float64, n)
	an := polyval(u, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056) + m[n-1]/rootSsqM

	if n > 5 {
		an1 := polyval(u, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633) + m[n-2]/rootSsqM
		phi := (ssqM - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		root := math.Sqrt(phi)
		a[n-1], a[0] = an, -an
		a[n-2], a[1] = an1, -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / root
		}
	} else {
		phi := (ssqM - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		root := math.Sqrt(phi)
		a[n-1], a[0] = an, -an
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / root
		}
	}
	return a
}

// swPValue maps W to an upper-tail p-value via Royston's normalizing
// transformations.
func swPValue(w float64, n int) float64 {
	fn := float64(n)
	switch {
	case n == 3:
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p)
	case n <= 11:
		gamma := -2.273 + 0.459*fn
		if gamma <= math.Log(1-w) {
			return 0
		}
		y := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		return clamp01(stdNormal.Survival((y - mu) / sigma))
	default:
		ln := math.Log(fn)
		y := math.Log(1 - w)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		return clamp01(stdNormal.Survival((y - mu) / sigma))
	}
}

// polyval evaluates c1·u + c2·u² + ... in ascending order.
func polyval(u float64, coeffs ...float64) float64 {
	var sum, pow float64
	pow = u
	for _, c := range coeffs {
		sum += c * pow
		pow *= u
	}
	return sum
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
