package poincare

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SD1 is the short-term variability descriptor: the standard deviation of
// the point cloud along the minor axis of the Poincaré ellipse, SDSD/√2,
// using the sample (n-1 denominator) standard deviation of the successive
// differences. A two-sample sequence has a single point and SD1 is 0.
func SD1(rr []float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	return sd1(newPlot(rr)), nil
}

// SD2 is the long-term variability descriptor along the major axis,
// √(2·SDRR² − SDSD²/2). By construction SD1² + SD2² = 2·SDRR².
func SD2(rr []float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	return sd2(rr, newPlot(rr)), nil
}

func sd1(p plot) float64 {
	return sdsd(p) / math.Sqrt2
}

func sd2(rr []float64, p plot) float64 {
	sdrr := stat.StdDev(rr, nil)
	s := sdsd(p)
	v := 2*sdrr*sdrr - 0.5*s*s
	if v < 0 {
		// float cancellation only; the identity keeps v >= 0 analytically
		return 0
	}
	return math.Sqrt(v)
}

// sdsd is the sample standard deviation of the successive differences.
// A single difference carries no spread information and yields 0, which
// keeps the n = 2 boundary free of a division by n-2.
func sdsd(p plot) float64 {
	if len(p.d) < 2 {
		return 0
	}
	return math.Sqrt(stat.Variance(p.d, nil))
}
