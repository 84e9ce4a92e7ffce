package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardiolab/hra-cli/internal/batch"
)

var (
	statsStudy   string
	statsResults string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compare the two groups of a study statistically",
	Long: `Runs the stats stage: reads the measure tables written by 'measures',
selects the appropriate test per measure (Student's t for normal samples,
Mann-Whitney U otherwise), and writes effect-size tables and figures for
every timescale and bin-count combination.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsStudy, "study", "", "Study name or path to a study YAML file (required)")
	statsCmd.Flags().StringVar(&statsResults, "results", "results", "Results root written by the measure stage")
	statsCmd.MarkFlagRequired("study")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := resolveStudy(statsStudy)
	if err != nil {
		return err
	}

	runner := &batch.StatsRunner{
		Study:       s,
		ResultsRoot: statsResults,
		Log:         newLogger(),
	}
	if err := runner.Run(); err != nil {
		return fmt.Errorf("stats stage failed: %w", err)
	}
	return nil
}
