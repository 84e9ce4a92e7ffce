package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// StudentT runs the two-sample pooled-variance t-test (two-sided) and
// returns the statistic and p-value. Requires at least two samples per
// group. A zero pooled variance degenerates to t = 0, p = 1 for equal
// means and t = ±Inf, p = 0 otherwise.
func StudentT(x, y []float64) (t, p float64, err error) {
	nx, ny := len(x), len(y)
	if nx < 2 || ny < 2 {
		return 0, 0, fmt.Errorf("%w: t-test needs at least 2 samples per group", ErrSampleSize)
	}

	mx, my := stat.Mean(x, nil), stat.Mean(y, nil)
	vx, vy := stat.Variance(x, nil), stat.Variance(y, nil)

	dof := float64(nx + ny - 2)
	pooled := (float64(nx-1)*vx + float64(ny-1)*vy) / dof
	se := math.Sqrt(pooled * (1/float64(nx) + 1/float64(ny)))

	if se == 0 {
		if mx == my {
			return 0, 1, nil
		}
		return math.Inf(sign(mx - my)), 0, nil
	}

	t = (mx - my) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	p = 2 * dist.CDF(-math.Abs(t))
	return t, clamp01(p), nil
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
