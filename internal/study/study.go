// Package study defines the YAML study configuration that replaces the
// reference analysis' inline USER CONFIGURATION block: which two cohorts
// are compared, where their HRV segments and inclusion lists live, and
// the analysis parameters shared by every stage.
package study

import (
	"fmt"

	"github.com/cardiolab/hra-cli/internal/hrv"
)

// Study describes one two-cohort comparison.
type Study struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Groups      []Group `yaml:"groups"`

	// Band is the accepted RR range in milliseconds.
	Band BandConfig `yaml:"band"`

	// BinCounts are the histogram resolutions the measure stage exports;
	// the statistical stage consumes the same list.
	BinCounts []int `yaml:"bin_counts"`

	// KDEGridSize is the evaluation grid length of the KDE-based AMI.
	KDEGridSize int `yaml:"kde_grid_size"`

	// Timescales restricts the analysis to the listed segment durations
	// (minutes). Empty means every timescale directory found on disk.
	Timescales []int `yaml:"timescales"`
}

// Group is one cohort: a label, the base directory holding per-timescale
// segment folders, and the inclusion ID list.
type Group struct {
	Label   string `yaml:"label"`
	DataDir string `yaml:"data_dir"`
	IDsFile string `yaml:"ids_file"`
}

// BandConfig mirrors hrv.Band in YAML form.
type BandConfig struct {
	LowerMS float64 `yaml:"lower_ms"`
	UpperMS float64 `yaml:"upper_ms"`
}

// DefaultBinCounts matches the reference analysis sweep.
var DefaultBinCounts = []int{25, 50, 100, 150, 200, 300, 500, 1000}

const defaultKDEGridSize = 1000

// Validate checks required fields and applies defaults for the optional
// analysis parameters.
func (s *Study) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("study has no name")
	}
	if len(s.Groups) != 2 {
		return fmt.Errorf("study %q: need exactly 2 groups, got %d", s.Name, len(s.Groups))
	}
	for i, g := range s.Groups {
		if g.Label == "" {
			return fmt.Errorf("study %q: group %d has no label", s.Name, i+1)
		}
		if g.DataDir == "" {
			return fmt.Errorf("study %q: group %q has no data_dir", s.Name, g.Label)
		}
		if g.IDsFile == "" {
			return fmt.Errorf("study %q: group %q has no ids_file", s.Name, g.Label)
		}
	}

	if s.Band.LowerMS == 0 && s.Band.UpperMS == 0 {
		s.Band = BandConfig{LowerMS: hrv.DefaultBand.LowerMS, UpperMS: hrv.DefaultBand.UpperMS}
	}
	if err := s.RRBand().Validate(); err != nil {
		return fmt.Errorf("study %q: %w", s.Name, err)
	}

	if len(s.BinCounts) == 0 {
		s.BinCounts = append([]int(nil), DefaultBinCounts...)
	}
	for _, b := range s.BinCounts {
		if b < 2 {
			return fmt.Errorf("study %q: bin count %d is below 2", s.Name, b)
		}
	}
	if s.KDEGridSize == 0 {
		s.KDEGridSize = defaultKDEGridSize
	}
	if s.KDEGridSize < 16 {
		return fmt.Errorf("study %q: kde_grid_size %d is too small", s.Name, s.KDEGridSize)
	}
	return nil
}

// RRBand returns the band as the hrv filter type.
func (s *Study) RRBand() hrv.Band {
	return hrv.Band{LowerMS: s.Band.LowerMS, UpperMS: s.Band.UpperMS}
}

// Slug is the output-directory name of the comparison, e.g. "oHS_vs_CHF".
func (s *Study) Slug() string {
	return s.Groups[0].Label + "_vs_" + s.Groups[1].Label
}

// WantsTimescale reports whether the study restricts timescales and, if
// so, whether the given duration is included.
func (s *Study) WantsTimescale(minutes int) bool {
	if len(s.Timescales) == 0 {
		return true
	}
	for _, m := range s.Timescales {
		if m == minutes {
			return true
		}
	}
	return false
}
