package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardiolab/hra-cli/internal/batch"
)

var (
	measuresStudy   string
	measuresData    string
	measuresOut     string
	measuresWorkers int
)

var measuresCmd = &cobra.Command{
	Use:   "measures",
	Short: "Compute per-subject Poincare asymmetry measures",
	Long: `Runs the measure stage of a study: reads every eligible RR-interval
segment, computes the Poincare descriptors and asymmetry indices, and
writes one CSV table per group, timescale, and histogram resolution.`,
	RunE: runMeasures,
}

func init() {
	measuresCmd.Flags().StringVar(&measuresStudy, "study", "", "Study name or path to a study YAML file (required)")
	measuresCmd.Flags().StringVar(&measuresData, "data", ".", "Base directory the study's data paths are relative to")
	measuresCmd.Flags().StringVar(&measuresOut, "out", "results", "Results root directory")
	measuresCmd.Flags().IntVar(&measuresWorkers, "workers", 0, "Concurrent subjects (0 = number of CPUs)")
	measuresCmd.MarkFlagRequired("study")
}

func runMeasures(cmd *cobra.Command, args []string) error {
	s, err := resolveStudy(measuresStudy)
	if err != nil {
		return err
	}

	runner := &batch.MeasuresRunner{
		Study:   s,
		BaseDir: measuresData,
		OutRoot: measuresOut,
		Workers: measuresWorkers,
		Log:     newLogger(),
	}
	if err := runner.Run(); err != nil {
		return fmt.Errorf("measure stage failed: %w", err)
	}
	return nil
}
