package stats

import (
	"fmt"
	"math"
)

// Test and effect-size names as they appear in result exports.
const (
	TestStudentT    = "Student's t-test"
	TestMannWhitney = "Mann-Whitney U test"
	EffectCohen     = "Cohen"
	EffectCliff     = "Cliff"
)

const alpha = 0.05

// EffectRow is the comparison result for one measure: the chosen test,
// its outcome, and the matching effect size.
type EffectRow struct {
	Measure        string
	TestUsed       string
	Statistic      float64
	RawP           float64
	Significant    bool
	EffectTest     string
	EffectSize     float64 // absolute value
	Interpretation string
	RMD            float64 // relative median difference, percent
}

// FormattedP renders the p-value the way the result tables print it.
func (r EffectRow) FormattedP() string {
	return FormatP(r.RawP)
}

// FormatP renders a p-value as "<0.001", a three-decimal value, or "NA".
func FormatP(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "NA"
	}
	if p < 0.001 {
		return "<0.001"
	}
	return fmt.Sprintf("%.3f", p)
}

// IsNormal applies the normality policy of the comparison stage: fewer
// than three samples can never be called normal, a failed Shapiro-Wilk
// computation (zero range, oversized sample) is treated as not normal,
// and otherwise the test's p-value is checked at the 0.05 level.
func IsNormal(x []float64) bool {
	if len(x) < 3 {
		return false
	}
	_, p, err := ShapiroWilk(x)
	if err != nil {
		return false
	}
	return p > alpha
}

// CompareMeasure compares one measure column across the two groups:
// Student's t-test with Cohen's d when both groups pass normality,
// otherwise Mann-Whitney U with Cliff's delta.
func CompareMeasure(name string, g1, g2 []float64) (EffectRow, error) {
	row := EffectRow{
		Measure: name,
		RMD:     RelativeMedianDiff(g1, g2),
	}

	if IsNormal(g1) && IsNormal(g2) {
		t, p, err := StudentT(g1, g2)
		if err != nil {
			return EffectRow{}, fmt.Errorf("measure %s: %w", name, err)
		}
		d := CohenD(g1, g2)
		row.TestUsed = TestStudentT
		row.Statistic = t
		row.RawP = p
		row.EffectTest = EffectCohen
		row.EffectSize = math.Abs(d)
		row.Interpretation = InterpretCohen(d)
	} else {
		u, p, err := MannWhitneyU(g1, g2)
		if err != nil {
			return EffectRow{}, fmt.Errorf("measure %s: %w", name, err)
		}
		delta := CliffsDelta(g1, g2)
		row.TestUsed = TestMannWhitney
		row.Statistic = u
		row.RawP = p
		row.EffectTest = EffectCliff
		row.EffectSize = math.Abs(delta)
		row.Interpretation = InterpretCliff(delta)
	}

	row.Significant = !math.IsNaN(row.RawP) && row.RawP < alpha
	return row, nil
}

// CompareAll runs CompareMeasure over every named column, in order.
func CompareAll(names []string, g1, g2 map[string][]float64) ([]EffectRow, error) {
	rows := make([]EffectRow, 0, len(names))
	for _, name := range names {
		row, err := CompareMeasure(name, g1[name], g2[name])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
