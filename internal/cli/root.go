package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootVerbose bool
	rootQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "hra",
	Short: "HRA CLI - Heart rate asymmetry analysis for RR-interval recordings",
	Long: `HRA CLI computes Poincare-plot asymmetry measures from RR-interval
segment files and compares two subject groups statistically.

The pipeline has two stages: the measure stage walks a study's segment
directories and writes per-subject measure tables, the stats stage reads
those tables back and produces effect-size results and figures.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "Only log warnings and errors")

	rootCmd.AddCommand(measuresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(listStudiesCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}
