package poincare

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// GuzikIndex is the percentage of the summed squared perpendicular
// distances to the identity line contributed by decelerations (d_i > 0).
// Points exactly on the line carry zero distance and therefore contribute
// zero to both numerator and denominator; they are not skipped. The
// no-asymmetry baseline is 50, a monotonically increasing sequence gives
// 100, and a fully degenerate cloud (all points on the line) falls back
// to the baseline 50.
func GuzikIndex(rr []float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	return guzikIndex(newPlot(rr)), nil
}

func guzikIndex(p plot) float64 {
	var above, total float64
	for _, d := range p.d {
		sq := d * d / 2 // squared perpendicular distance
		total += sq
		if d > 0 {
			above += sq
		}
	}
	if total == 0 {
		return 50
	}
	return above / total * 100
}

// PortaIndex is the percentage of points strictly below the identity line
// (accelerations, d_i < 0) among all off-line points. Points exactly on
// the line are excluded from the denominator. Baseline 50; a
// monotonically increasing sequence gives 0; all points on the line falls
// back to 50.
func PortaIndex(rr []float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	return portaIndex(newPlot(rr)), nil
}

func portaIndex(p plot) float64 {
	var above, below int
	for _, d := range p.d {
		switch {
		case d > 0:
			above++
		case d < 0:
			below++
		}
	}
	if above+below == 0 {
		return 50
	}
	return float64(below) / float64(above+below) * 100
}

// AsymmetricSpread compares the dispersion of the decelerating points'
// arc distances from the identity line against the dispersion over all
// off-line points: sd(arc | d > 0) / (2 · sd(arc | d ≠ 0)), sample
// standard deviations. The sign convention matches Guzik's: values above
// the 0.5 baseline indicate deceleration-dominant spread. Degenerate
// spread (fewer than two points on either set, or zero total dispersion)
// yields 0.
func AsymmetricSpread(rr []float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	return asymmetricSpread(newPlot(rr)), nil
}

func asymmetricSpread(p plot) float64 {
	_, _, arc := p.arcLengths()

	var aboveArcs, offLineArcs []float64
	for i, d := range p.d {
		if d == 0 {
			continue
		}
		offLineArcs = append(offLineArcs, arc[i])
		if d > 0 {
			aboveArcs = append(aboveArcs, arc[i])
		}
	}
	if len(aboveArcs) < 2 || len(offLineArcs) < 2 {
		return 0
	}
	sdTotal := math.Sqrt(stat.Variance(offLineArcs, nil))
	if sdTotal == 0 {
		return 0
	}
	sdAbove := math.Sqrt(stat.Variance(aboveArcs, nil))
	return sdAbove / (2 * sdTotal)
}

// SlopeIndex is the percentage of the summed angular deviations from the
// identity line contributed by decelerations. Baseline 50; all points on
// the line falls back to 50.
func SlopeIndex(rr []float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	return slopeIndex(newPlot(rr)), nil
}

func slopeIndex(p plot) float64 {
	theta, _, _ := p.arcLengths()
	var above, total float64
	for i, d := range p.d {
		total += theta[i]
		if d > 0 {
			above += theta[i]
		}
	}
	if total == 0 {
		return 50
	}
	return above / total * 100
}

// AreaIndex is the percentage of the summed circular sector areas
// (½ · D² · θ around the identity line) contributed by decelerations.
// Baseline 50; zero total area falls back to 50.
func AreaIndex(rr []float64) (float64, error) {
	if err := Validate(rr); err != nil {
		return 0, err
	}
	return areaIndex(newPlot(rr)), nil
}

func areaIndex(p plot) float64 {
	theta, dist, _ := p.arcLengths()
	var above, total float64
	for i, d := range p.d {
		sector := 0.5 * dist[i] * dist[i] * theta[i]
		total += sector
		if d > 0 {
			above += sector
		}
	}
	if total == 0 {
		return 50
	}
	return above / total * 100
}
