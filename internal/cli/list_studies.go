package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listStudiesCmd = &cobra.Command{
	Use:   "studies",
	Short: "List available studies",
	Long:  `Lists the built-in studies plus any YAML files in the studies directory.`,
	RunE:  runListStudies,
}

func runListStudies(cmd *cobra.Command, args []string) error {
	registry, err := loadStudies()
	if err != nil {
		return err
	}

	studies := registry.ListWithDescriptions()
	if len(studies) == 0 {
		fmt.Println("No studies found")
		return nil
	}

	// Sort by name
	names := make([]string, 0, len(studies))
	for name := range studies {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available studies:")
	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %-20s %s\n", name, studies[name])
	}
	fmt.Println()

	return nil
}
