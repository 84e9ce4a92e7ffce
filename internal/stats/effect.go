package stats

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// CohenD is the pooled-standard-deviation standardized mean difference.
func CohenD(x, y []float64) float64 {
	nx, ny := float64(len(x)), float64(len(y))
	dof := nx + ny - 2
	if dof <= 0 {
		return 0
	}
	pooled := math.Sqrt(((nx-1)*stat.Variance(x, nil) + (ny-1)*stat.Variance(y, nil)) / dof)
	if pooled == 0 {
		return 0
	}
	return (stat.Mean(x, nil) - stat.Mean(y, nil)) / pooled
}

// CliffsDelta is the non-parametric dominance effect size in [-1, 1]:
// the probability a value from x exceeds one from y, minus the reverse.
func CliffsDelta(x, y []float64) float64 {
	if len(x) == 0 || len(y) == 0 {
		return 0
	}
	var total float64
	for _, xi := range x {
		for _, yi := range y {
			switch {
			case xi > yi:
				total++
			case xi < yi:
				total--
			}
		}
	}
	return total / (float64(len(x)) * float64(len(y)))
}

// InterpretCohen maps |d| onto the interpretation scale used by the
// reference analysis.
func InterpretCohen(d float64) string {
	switch a := math.Abs(d); {
	case a < 0.25:
		return "Small"
	case a < 0.50:
		return "Medium"
	case a < 0.90:
		return "Large"
	default:
		return "Very Large"
	}
}

// InterpretCliff maps |delta| onto the interpretation scale used by the
// reference analysis.
func InterpretCliff(delta float64) string {
	switch a := math.Abs(delta); {
	case a < 0.15:
		return "Negligible"
	case a < 0.33:
		return "Small"
	case a < 0.47:
		return "Medium"
	default:
		return "Large"
	}
}

// RelativeMedianDiff is |med(y) - med(x)| / med(x) in percent, rounded to
// one decimal. It is NaN when the reference median is zero or either
// group is empty.
func RelativeMedianDiff(x, y []float64) float64 {
	mx, err := stats.Median(stats.Float64Data(x))
	if err != nil || mx == 0 {
		return math.NaN()
	}
	my, err := stats.Median(stats.Float64Data(y))
	if err != nil {
		return math.NaN()
	}
	return math.Round(math.Abs((my-mx)/mx)*1000) / 10
}
