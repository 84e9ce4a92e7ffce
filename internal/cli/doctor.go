package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cardiolab/hra-cli/internal/hrv"
)

var (
	doctorStudy string
	doctorData  string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check environment and study data layout",
	Long:  `Validates the local environment and, given a study, checks that its ID lists and segment directories are in place.`,
	RunE:  runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorStudy, "study", "", "Study to check (name or YAML path)")
	doctorCmd.Flags().StringVar(&doctorData, "data", ".", "Base directory the study's data paths are relative to")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("🏥 HRA Environment Check")
	fmt.Println()

	// Check Go version
	fmt.Printf("Go Version:        %s\n", runtime.Version())
	fmt.Printf("OS/Arch:           %s/%s\n\n", runtime.GOOS, runtime.GOARCH)

	// Check studies
	registry, err := loadStudies()
	if err != nil {
		fmt.Printf("❌ Failed to load studies: %v\n", err)
		return nil
	}
	names := registry.List()
	fmt.Printf("✅ Found %d studies: %v\n\n", len(names), names)

	if doctorStudy == "" {
		fmt.Println("Pass --study to check a study's data layout")
		fmt.Println()
		fmt.Println("✅ Environment check complete")
		return nil
	}

	s, err := resolveStudy(doctorStudy)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return nil
	}
	fmt.Printf("Study: %s (%s)\n\n", s.Name, s.Slug())

	for _, group := range s.Groups {
		fmt.Printf("Group %s:\n", group.Label)

		idsPath := filepath.Join(doctorData, group.IDsFile)
		ids, err := hrv.ReadIDSet(idsPath)
		if err != nil {
			fmt.Printf("  ❌ ID list: %v\n", err)
			continue
		}
		fmt.Printf("  ✅ ID list %s: %d subjects\n", idsPath, len(ids))

		dataDir := filepath.Join(doctorData, group.DataDir)
		if _, err := os.Stat(dataDir); err != nil {
			fmt.Printf("  ❌ Data directory not found: %s\n", dataDir)
			continue
		}

		dirs, err := hrv.DiscoverTimescales(dataDir)
		if err != nil {
			fmt.Printf("  ❌ %v\n", err)
			continue
		}
		if len(dirs) == 0 {
			fmt.Printf("  ⚠️  No timescale directories under %s\n", dataDir)
			continue
		}
		for _, dir := range dirs {
			if !s.WantsTimescale(dir.Minutes) {
				continue
			}
			files, err := hrv.EligibleSegments(dir.Path, ids)
			if err != nil {
				fmt.Printf("  ❌ %d min: %v\n", dir.Minutes, err)
				continue
			}
			mark := "✅"
			if len(files) == 0 {
				mark = "⚠️ "
			}
			fmt.Printf("  %s %d min: %d eligible segments\n", mark, dir.Minutes, len(files))
		}
		fmt.Println()
	}

	fmt.Println("✅ Environment check complete")
	return nil
}
