// Package report reads and writes the pipeline's tabular interchange
// files: per-cohort measure tables produced by the measure stage and the
// effect-size result tables produced by the comparison stage.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cardiolab/hra-cli/internal/poincare"
	"github.com/cardiolab/hra-cli/internal/stats"
)

// WriteMeasures writes one measure record per row under the fixed header,
// creating parent directories as needed.
func WriteMeasures(path string, records []poincare.Measures) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create measures file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(poincare.MeasureNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, m := range records {
		row := make([]string, 0, len(poincare.MeasureNames()))
		for _, v := range m.Values() {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write measures row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush measures file: %w", err)
	}
	return nil
}

// MeasureTable is a measure CSV loaded back for the comparison stage:
// ordered column names and per-column values.
type MeasureTable struct {
	Names   []string
	Columns map[string][]float64
}

// Rows returns the number of records in the table.
func (t *MeasureTable) Rows() int {
	if len(t.Names) == 0 {
		return 0
	}
	return len(t.Columns[t.Names[0]])
}

// ReadMeasures loads a measure CSV written by WriteMeasures.
func ReadMeasures(path string) (*MeasureTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open measures file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &MeasureTable{
		Names:   header,
		Columns: make(map[string][]float64, len(header)),
	}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read measures row: %w", err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("%s: row has %d fields, header has %d", path, len(record), len(header))
		}
		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value %q in column %s", path, cell, header[i])
			}
			table.Columns[header[i]] = append(table.Columns[header[i]], v)
		}
	}
	return table, nil
}

// effectHeader mirrors the reference analysis export: RMD first, raw
// p-value omitted in favor of the formatted one.
var effectHeader = []string{
	"RMD [%]",
	"Index",
	"Test Used",
	"Statistic",
	"p-value",
	"Significant",
	"Effect Size Test Used",
	"Effect Size",
	"Effect Size Interpretation",
}

// WriteEffectRows writes the comparison results for one
// (timescale, bin count) combination.
func WriteEffectRows(path string, rows []stats.EffectRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(effectHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		significant := "No"
		if row.Significant {
			significant = "Yes"
		}
		record := []string{
			formatRMD(row.RMD),
			row.Measure,
			row.TestUsed,
			fmt.Sprintf("%.3f", row.Statistic),
			row.FormattedP(),
			significant,
			row.EffectTest,
			fmt.Sprintf("%.3f", row.EffectSize),
			row.Interpretation,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write results row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush results file: %w", err)
	}
	return nil
}

// WriteSweep writes a bin-count sensitivity table: one row per bin count
// with the histogram-based and plane-histogram indices.
func WriteSweep(path string, binCounts []int, hbAMI, plane []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sweep file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Bins", "HB AMI", "Plane Asymmetry"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, bins := range binCounts {
		record := []string{
			strconv.Itoa(bins),
			formatFloat(hbAMI[i]),
			formatFloat(plane[i]),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write sweep row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush sweep file: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatRMD(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return fmt.Sprintf("%.1f", v)
}
