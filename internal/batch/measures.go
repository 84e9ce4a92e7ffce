// Package batch drives the pipeline stages over a study: the measure
// stage walks every (group, timescale) segment directory and computes the
// per-subject measure records, the comparison stage reads those tables
// back and runs the group statistics with figure output.
package batch

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cardiolab/hra-cli/internal/hrv"
	"github.com/cardiolab/hra-cli/internal/logging"
	"github.com/cardiolab/hra-cli/internal/poincare"
	"github.com/cardiolab/hra-cli/internal/report"
	"github.com/cardiolab/hra-cli/internal/study"
)

// MeasuresRunner is the stage-1 driver.
type MeasuresRunner struct {
	Study *study.Study
	// BaseDir anchors the study's relative data paths.
	BaseDir string
	// OutRoot is the results root; measure tables land under
	// <OutRoot>/nonlinear_measures/<slug>/<T>min/.
	OutRoot string
	// Workers bounds the per-subject computation pool; 0 means NumCPU.
	Workers int
	Log     zerolog.Logger
}

// subjectResult carries one subject's record plus the histogram index at
// every configured resolution. Engine calls are pure, so subjects are
// computed in parallel and reassembled in file order.
type subjectResult struct {
	file hrv.SegmentFile
	base poincare.Measures
	hb   map[int]float64
	err  error
}

// Run computes and writes every measure table of the study.
func (r *MeasuresRunner) Run() error {
	runID := uuid.NewString()
	log := logging.Component(r.Log, "measures").With().
		Str("run_id", runID).Str("study", r.Study.Name).Logger()
	log.Info().Str("slug", r.Study.Slug()).Msg("measure stage starting")

	wrote := 0
	for i, group := range r.Study.Groups {
		prefix := fmt.Sprintf("g%d", i+1)
		n, err := r.runGroup(log, prefix, group)
		if err != nil {
			return fmt.Errorf("group %s: %w", group.Label, err)
		}
		wrote += n
	}
	if wrote == 0 {
		return fmt.Errorf("study %s: no eligible segments found", r.Study.Name)
	}

	log.Info().Int("tables", wrote).Msg("measure stage finished")
	return nil
}

func (r *MeasuresRunner) runGroup(log zerolog.Logger, prefix string, group study.Group) (int, error) {
	glog := log.With().Str("group", group.Label).Logger()

	ids, err := hrv.ReadIDSet(filepath.Join(r.BaseDir, group.IDsFile))
	if err != nil {
		return 0, err
	}
	dirs, err := hrv.DiscoverTimescales(filepath.Join(r.BaseDir, group.DataDir))
	if err != nil {
		return 0, err
	}

	wrote := 0
	for _, dir := range dirs {
		if !r.Study.WantsTimescale(dir.Minutes) {
			continue
		}
		files, err := hrv.EligibleSegments(dir.Path, ids)
		if err != nil {
			return 0, err
		}
		if len(files) == 0 {
			glog.Warn().Int("minutes", dir.Minutes).Msg("no eligible segments")
			continue
		}

		glog.Info().Int("minutes", dir.Minutes).Int("subjects", len(files)).Msg("computing measures")
		results := r.computeAll(files, dir.Minutes)
		for _, res := range results {
			if res.err != nil {
				return 0, fmt.Errorf("subject %d: %w", res.file.SubjectID, res.err)
			}
		}

		for _, bins := range r.Study.BinCounts {
			records := make([]poincare.Measures, len(results))
			for j, res := range results {
				m := res.base
				m.HistogramAMI = res.hb[bins]
				records[j] = m
			}
			name := fmt.Sprintf("%s_%dmin_%dbins.csv", prefix, dir.Minutes, bins)
			path := filepath.Join(r.measuresDir(), fmt.Sprintf("%dmin", dir.Minutes), name)
			if err := report.WriteMeasures(path, records); err != nil {
				return 0, err
			}
			wrote++
		}
	}
	return wrote, nil
}

// computeAll fans the per-subject work over a bounded pool and returns
// results in input order.
func (r *MeasuresRunner) computeAll(files []hrv.SegmentFile, minutes int) []subjectResult {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]subjectResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.computeSubject(files[idx], minutes)
			}
		}()
	}
	for idx := range files {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return results
}

func (r *MeasuresRunner) computeSubject(file hrv.SegmentFile, minutes int) subjectResult {
	res := subjectResult{file: file, hb: make(map[int]float64, len(r.Study.BinCounts))}

	seg, err := hrv.LoadSegment(file, minutes, r.Study.RRBand())
	if err != nil {
		res.err = err
		return res
	}
	rr := seg.RR

	// too few in-band samples: export a zero record rather than dropping
	// the subject, keeping cohort row counts aligned with the ID lists
	if len(rr) < 3 {
		for _, bins := range r.Study.BinCounts {
			res.hb[bins] = 0
		}
		return res
	}

	opts := poincare.Options{GridSize: r.Study.KDEGridSize}
	res.base, err = poincare.Compute(rr, opts)
	if err != nil {
		res.err = err
		return res
	}
	for _, bins := range r.Study.BinCounts {
		hb, err := poincare.HistogramAMI(rr, bins)
		if err != nil {
			res.err = err
			return res
		}
		res.hb[bins] = hb
	}
	return res
}

func (r *MeasuresRunner) measuresDir() string {
	return filepath.Join(r.OutRoot, "nonlinear_measures", r.Study.Slug())
}
