// Package poincare computes standard Poincaré plot descriptors and Heart
// Rate Asymmetry (HRA) measures over a single RR-interval segment.
//
// Every function is pure: one ordered RR sequence in, numbers out, no
// retained state. The batch driver may therefore call the engine from
// multiple goroutines without coordination.
package poincare

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput reports an RR sequence the engine refuses to work on:
// fewer than two samples, or a sample that is not a positive finite number.
var ErrInvalidInput = errors.New("invalid RR input")

// Options controls the tunable parameters of the measure record.
type Options struct {
	// Bins is the histogram resolution for the histogram-based AMI.
	Bins int
	// GridSize is the evaluation grid length for the KDE-based AMI.
	GridSize int
}

// DefaultBins and DefaultGridSize match the reference analysis configuration.
const (
	DefaultBins     = 100
	DefaultGridSize = 1000
)

func (o Options) withDefaults() Options {
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.GridSize <= 0 {
		o.GridSize = DefaultGridSize
	}
	return o
}

// Measures is the fixed record produced for one RR segment.
//
// Scale conventions (fixed, see the per-measure functions):
//   - SD1/SD2 are in milliseconds.
//   - GuzikIndex, PortaIndex, SlopeIndex and AreaIndex are percentages in
//     [0, 100] with a no-asymmetry baseline of 50.
//   - HistogramAMI and KDEAMI are percentages in [0, 100] with a
//     no-asymmetry baseline of 0.
//   - AsymmetricSpread is a dimensionless ratio with baseline 0.5.
type Measures struct {
	SD1              float64
	SD2              float64
	GuzikIndex       float64
	PortaIndex       float64
	AsymmetricSpread float64
	HistogramAMI     float64
	SlopeIndex       float64
	AreaIndex        float64
	KDEAMI           float64
}

// MeasureNames returns the column names of the record, in record order.
// The names match the CSV headers of the reference analysis exports.
func MeasureNames() []string {
	return []string{
		"SD1",
		"SD2",
		"Guzik Index",
		"Porta Index",
		"Asymmetric Spread Index",
		"HB AMI",
		"Slope Index",
		"Area Index",
		"KDE AMI",
	}
}

// Values returns the record fields in the MeasureNames order.
func (m Measures) Values() []float64 {
	return []float64{
		m.SD1,
		m.SD2,
		m.GuzikIndex,
		m.PortaIndex,
		m.AsymmetricSpread,
		m.HistogramAMI,
		m.SlopeIndex,
		m.AreaIndex,
		m.KDEAMI,
	}
}

// Compute produces the full measure record for one RR segment (milliseconds).
// The difference sequence is derived once and shared by all measures.
func Compute(rr []float64, opts Options) (Measures, error) {
	if err := Validate(rr); err != nil {
		return Measures{}, err
	}
	opts = opts.withDefaults()

	p := newPlot(rr)
	return Measures{
		SD1:              sd1(p),
		SD2:              sd2(rr, p),
		GuzikIndex:       guzikIndex(p),
		PortaIndex:       portaIndex(p),
		AsymmetricSpread: asymmetricSpread(p),
		HistogramAMI:     histogramAMI(p, opts.Bins),
		SlopeIndex:       slopeIndex(p),
		AreaIndex:        areaIndex(p),
		KDEAMI:           kdeAMI(p, opts.GridSize, 0),
	}, nil
}

// Validate checks an RR sequence against the engine's input contract.
func Validate(rr []float64) error {
	if len(rr) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidInput, len(rr))
	}
	for i, v := range rr {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: sample %v at index %d is not a positive finite value", ErrInvalidInput, v, i)
		}
	}
	return nil
}

// plot is the derived Poincaré point set: for an n-sample sequence there are
// exactly n-1 points (x_i, y_i) = (RR_i, RR_i+1) with difference d_i = y_i - x_i.
// A positive difference is a deceleration, a negative one an acceleration,
// and d_i = 0 places the point on the line of identity.
type plot struct {
	x []float64
	y []float64
	d []float64
}

func newPlot(rr []float64) plot {
	n := len(rr) - 1
	p := plot{
		x: rr[:n],
		y: rr[1:],
		d: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p.d[i] = p.y[i] - p.x[i]
	}
	return p
}

// signedDistances returns the signed perpendicular distances of the points
// from the identity line, d_i/√2. Positive means above the line (deceleration).
func (p plot) signedDistances() []float64 {
	s := make([]float64, len(p.d))
	for i, d := range p.d {
		s[i] = d / math.Sqrt2
	}
	return s
}

// arcLengths returns |atan2(y, x) - π/4| · √(x²+y²) per point, the arc
// distance used by the spread, slope and area measures.
func (p plot) arcLengths() (theta, dist, arc []float64) {
	n := len(p.d)
	theta = make([]float64, n)
	dist = make([]float64, n)
	arc = make([]float64, n)
	for i := 0; i < n; i++ {
		theta[i] = math.Abs(math.Atan2(p.y[i], p.x[i]) - math.Pi/4)
		dist[i] = math.Hypot(p.x[i], p.y[i])
		arc[i] = theta[i] * dist[i]
	}
	return theta, dist, arc
}
