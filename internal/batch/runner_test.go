package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiolab/hra-cli/internal/report"
	"github.com/cardiolab/hra-cli/internal/study"
	"github.com/cardiolab/hra-cli/internal/synth"
)

const subjectsPerGroup = 5

// buildStudyDirs lays out a two-group dataset of synthetic segments and
// returns (base directory, validated study).
func buildStudyDirs(t *testing.T) (string, *study.Study) {
	t.Helper()
	base := t.TempDir()

	writeGroup := func(dir, idsFile string, firstID int, asymmetry float64) {
		segDir := filepath.Join(base, dir, "1min")
		require.NoError(t, os.MkdirAll(segDir, 0o755))

		var ids []string
		for i := 0; i < subjectsPerGroup; i++ {
			id := firstID + i
			ids = append(ids, strconv.Itoa(id))

			cfg := synth.DefaultConfig()
			cfg.Seed = int64(id)
			cfg.Asymmetry = asymmetry
			rr := synth.Generate(cfg)

			var b strings.Builder
			for _, v := range rr {
				fmt.Fprintf(&b, "%.3f\n", v)
			}
			path := filepath.Join(segDir, fmt.Sprintf("%d.csv", id))
			require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
		}
		require.NoError(t, os.WriteFile(filepath.Join(base, idsFile), []byte(strings.Join(ids, "\n")+"\n"), 0o644))
	}

	writeGroup("asym", "asym_ids.csv", 101, 0.5)
	writeGroup("sym", "sym_ids.csv", 201, 0)

	s := &study.Study{
		Name: "synthetic",
		Groups: []study.Group{
			{Label: "Asym", DataDir: "asym", IDsFile: "asym_ids.csv"},
			{Label: "Sym", DataDir: "sym", IDsFile: "sym_ids.csv"},
		},
		BinCounts:   []int{25, 50},
		KDEGridSize: 256,
		Timescales:  []int{1},
	}
	require.NoError(t, s.Validate())
	return base, s
}

func runMeasures(t *testing.T, base string, s *study.Study) string {
	t.Helper()
	outRoot := t.TempDir()
	runner := &MeasuresRunner{
		Study:   s,
		BaseDir: base,
		OutRoot: outRoot,
		Workers: 2,
		Log:     zerolog.Nop(),
	}
	require.NoError(t, runner.Run())
	return outRoot
}

func TestMeasuresRunnerWritesTables(t *testing.T) {
	base, s := buildStudyDirs(t)
	outRoot := runMeasures(t, base, s)

	dir := filepath.Join(outRoot, "nonlinear_measures", "Asym_vs_Sym", "1min")
	for _, name := range []string{
		"g1_1min_25bins.csv", "g1_1min_50bins.csv",
		"g2_1min_25bins.csv", "g2_1min_50bins.csv",
	} {
		table, err := report.ReadMeasures(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, subjectsPerGroup, table.Rows(), name)
		assert.Contains(t, table.Columns, "HB AMI")
		assert.Contains(t, table.Columns, "Guzik Index")
	}
}

func TestMeasuresRunnerPatchesHistogramPerBinCount(t *testing.T) {
	base, s := buildStudyDirs(t)
	outRoot := runMeasures(t, base, s)

	dir := filepath.Join(outRoot, "nonlinear_measures", "Asym_vs_Sym", "1min")
	coarse, err := report.ReadMeasures(filepath.Join(dir, "g1_1min_25bins.csv"))
	require.NoError(t, err)
	fine, err := report.ReadMeasures(filepath.Join(dir, "g1_1min_50bins.csv"))
	require.NoError(t, err)

	// only the histogram index depends on the bin count
	assert.NotEqual(t, coarse.Columns["HB AMI"], fine.Columns["HB AMI"])
	assert.Equal(t, coarse.Columns["SD1"], fine.Columns["SD1"])
	assert.Equal(t, coarse.Columns["KDE AMI"], fine.Columns["KDE AMI"])
}

func TestMeasuresRunnerNoEligibleSegments(t *testing.T) {
	base, s := buildStudyDirs(t)
	// empty both inclusion lists
	require.NoError(t, os.WriteFile(filepath.Join(base, "asym_ids.csv"), []byte("999\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sym_ids.csv"), []byte("999\n"), 0o644))

	runner := &MeasuresRunner{Study: s, BaseDir: base, OutRoot: t.TempDir(), Log: zerolog.Nop()}
	err := runner.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no eligible segments")
}

func TestStatsRunnerEndToEnd(t *testing.T) {
	base, s := buildStudyDirs(t)
	outRoot := runMeasures(t, base, s)

	runner := &StatsRunner{Study: s, ResultsRoot: outRoot, Log: zerolog.Nop()}
	require.NoError(t, runner.Run())

	statsDir := filepath.Join(outRoot, "statistical_analysis", "Asym_vs_Sym")
	for _, bins := range s.BinCounts {
		suffix := fmt.Sprintf("1min_%dbins", bins)
		resultDir := filepath.Join(statsDir, "results_"+suffix)

		data, err := os.ReadFile(filepath.Join(resultDir, "effect_size_results__"+suffix+".csv"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Guzik Index")
		assert.Contains(t, string(data), "HB AMI")

		png, err := os.ReadFile(filepath.Join(resultDir, "effect_sizes.png"))
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG", string(png[:4]))
	}

	png, err := os.ReadFile(filepath.Join(statsDir, "hb_ami_sensitivity.png"))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))
}

func TestStatsRunnerSkipsMissingTables(t *testing.T) {
	base, s := buildStudyDirs(t)
	outRoot := runMeasures(t, base, s)

	// drop one combination; the runner warns and moves on
	missing := filepath.Join(outRoot, "nonlinear_measures", "Asym_vs_Sym", "1min", "g2_1min_50bins.csv")
	require.NoError(t, os.Remove(missing))

	runner := &StatsRunner{Study: s, ResultsRoot: outRoot, Log: zerolog.Nop()}
	require.NoError(t, runner.Run())

	statsDir := filepath.Join(outRoot, "statistical_analysis", "Asym_vs_Sym")
	_, err := os.Stat(filepath.Join(statsDir, "results_1min_25bins"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(statsDir, "results_1min_50bins"))
	assert.True(t, os.IsNotExist(err))

	// incomplete series: the sensitivity chart is not rendered
	_, err = os.Stat(filepath.Join(statsDir, "hb_ami_sensitivity.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestStatsRunnerEmptyResults(t *testing.T) {
	_, s := buildStudyDirs(t)
	runner := &StatsRunner{Study: s, ResultsRoot: t.TempDir(), Log: zerolog.Nop()}
	err := runner.Run()
	require.Error(t, err)
}
