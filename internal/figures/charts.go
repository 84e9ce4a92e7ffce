// Package figures renders the static PNG charts of the pipeline: effect
// sizes per measure for one (timescale, bin count) combination, and the
// bin-count sensitivity of the histogram-based asymmetry index.
package figures

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/cardiolab/hra-cli/internal/stats"
)

// RenderEffectSizes draws one bar per measure, bar height = absolute
// effect size. Significant comparisons are annotated in the bar label.
func RenderEffectSizes(w io.Writer, title string, rows []stats.EffectRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("no effect rows to plot")
	}

	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		label := row.Measure
		if row.Significant {
			label += " *"
		}
		bars = append(bars, chart.Value{Label: label, Value: row.EffectSize})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1280,
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "Effect size",
		},
		XAxis: chart.Style{
			TextRotationDegrees: 30,
		},
	}
	return graph.Render(chart.PNG, w)
}

// RenderSensitivity draws one line per labeled series over the bin-count
// axis; series iterate in sorted label order so renders are stable.
func RenderSensitivity(w io.Writer, title string, binCounts []int, series map[string][]float64) error {
	if len(binCounts) == 0 || len(series) == 0 {
		return fmt.Errorf("no sensitivity data to plot")
	}

	xs := make([]float64, len(binCounts))
	for i, b := range binCounts {
		xs[i] = float64(b)
	}

	labels := make([]string, 0, len(series))
	for label := range series {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var plotted []chart.Series
	for _, label := range labels {
		ys := series[label]
		if len(ys) != len(xs) {
			return fmt.Errorf("series %q has %d values for %d bin counts", label, len(ys), len(xs))
		}
		plotted = append(plotted, chart.ContinuousSeries{
			Name:    label,
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name: "Histogram bins",
		},
		YAxis: chart.YAxis{
			Name: "Index value",
		},
		Series: plotted,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	return graph.Render(chart.PNG, w)
}

// SavePNG renders into a file, creating parent directories as needed.
func SavePNG(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create figure directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
