package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/cardiolab/hra-cli/internal/figures"
	"github.com/cardiolab/hra-cli/internal/hrv"
	"github.com/cardiolab/hra-cli/internal/logging"
	"github.com/cardiolab/hra-cli/internal/report"
	"github.com/cardiolab/hra-cli/internal/stats"
	"github.com/cardiolab/hra-cli/internal/study"
)

// StatsRunner is the stage-2 driver. It reads back the measure tables
// written by MeasuresRunner and produces the effect-size tables and
// figures for every (timescale, bin count) combination.
type StatsRunner struct {
	Study *study.Study
	// ResultsRoot is the root MeasuresRunner wrote into.
	ResultsRoot string
	Log         zerolog.Logger
}

// sensitivityMeasure is the measure whose effect size is tracked across
// bin counts for the sensitivity figure.
const sensitivityMeasure = "HB AMI"

// Run compares the two groups at every available resolution.
func (r *StatsRunner) Run() error {
	slug := r.Study.Slug()
	measuresDir := filepath.Join(r.ResultsRoot, "nonlinear_measures", slug)
	statsDir := filepath.Join(r.ResultsRoot, "statistical_analysis", slug)
	log := logging.Component(r.Log, "stats").With().Str("study", r.Study.Name).Logger()

	timescales, err := r.timescales(measuresDir)
	if err != nil {
		return err
	}

	// effect size of the histogram index per bin count, one series per
	// timescale, for the sensitivity chart
	sensitivity := make(map[string][]float64)

	processed := 0
	for _, minutes := range timescales {
		label := fmt.Sprintf("%d min", minutes)
		for _, bins := range r.Study.BinCounts {
			rows, ok, err := r.compareOne(log, measuresDir, statsDir, minutes, bins)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			processed++
			for _, row := range rows {
				if row.Measure == sensitivityMeasure {
					sensitivity[label] = append(sensitivity[label], row.EffectSize)
				}
			}
		}
	}
	if processed == 0 {
		return fmt.Errorf("study %s: no measure tables under %s", r.Study.Name, measuresDir)
	}

	if err := r.renderSensitivity(statsDir, sensitivity); err != nil {
		return err
	}

	log.Info().Int("comparisons", processed).Msg("comparison stage finished")
	return nil
}

func (r *StatsRunner) compareOne(log zerolog.Logger, measuresDir, statsDir string, minutes, bins int) ([]stats.EffectRow, bool, error) {
	suffix := fmt.Sprintf("%dmin_%dbins", minutes, bins)
	dir := filepath.Join(measuresDir, fmt.Sprintf("%dmin", minutes))
	g1Path := filepath.Join(dir, "g1_"+suffix+".csv")
	g2Path := filepath.Join(dir, "g2_"+suffix+".csv")

	for _, p := range []string{g1Path, g2Path} {
		if _, err := os.Stat(p); err != nil {
			log.Warn().Str("path", p).Msg("measure table missing, skipping combination")
			return nil, false, nil
		}
	}

	g1, err := report.ReadMeasures(g1Path)
	if err != nil {
		return nil, false, err
	}
	g2, err := report.ReadMeasures(g2Path)
	if err != nil {
		return nil, false, err
	}

	rows, err := stats.CompareAll(g1.Names, g1.Columns, g2.Columns)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", suffix, err)
	}

	outDir := filepath.Join(statsDir, "results_"+suffix)
	csvPath := filepath.Join(outDir, "effect_size_results__"+suffix+".csv")
	if err := report.WriteEffectRows(csvPath, rows); err != nil {
		return nil, false, err
	}

	title := fmt.Sprintf("%s vs %s (%d min, %d bins)", r.Study.Groups[0].Label, r.Study.Groups[1].Label, minutes, bins)
	pngPath := filepath.Join(outDir, "effect_sizes.png")
	err = figures.SavePNG(pngPath, func(w io.Writer) error {
		return figures.RenderEffectSizes(w, title, rows)
	})
	if err != nil {
		return nil, false, err
	}

	log.Info().Int("minutes", minutes).Int("bins", bins).Msg("comparison written")
	return rows, true, nil
}

// timescales returns the minutes to process, preferring the study's own
// list and falling back to whatever stage 1 left on disk.
func (r *StatsRunner) timescales(measuresDir string) ([]int, error) {
	if len(r.Study.Timescales) > 0 {
		out := append([]int(nil), r.Study.Timescales...)
		sort.Ints(out)
		return out, nil
	}
	dirs, err := hrv.DiscoverTimescales(measuresDir)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(dirs))
	for i, d := range dirs {
		out[i] = d.Minutes
	}
	return out, nil
}

// renderSensitivity writes the bin-count sensitivity chart. Series with
// gaps (skipped combinations) are dropped so the x axis stays aligned.
func (r *StatsRunner) renderSensitivity(statsDir string, sensitivity map[string][]float64) error {
	complete := make(map[string][]float64)
	for label, values := range sensitivity {
		if len(values) == len(r.Study.BinCounts) {
			complete[label] = values
		}
	}
	if len(complete) == 0 {
		return nil
	}
	path := filepath.Join(statsDir, "hb_ami_sensitivity.png")
	title := fmt.Sprintf("%s effect size vs bin count", sensitivityMeasure)
	return figures.SavePNG(path, func(w io.Writer) error {
		return figures.RenderSensitivity(w, title, r.Study.BinCounts, complete)
	})
}
