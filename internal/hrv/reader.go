package hrv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ReadRR reads an RR segment file: one interval in milliseconds per line,
// optionally comma-separated with the value in the first column. A single
// non-numeric header line is tolerated; any later unparsable line is an
// error. An empty segment is an error.
func ReadRR(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open segment file: %w", err)
	}
	defer f.Close()

	var rr []float64
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if i := strings.IndexByte(text, ','); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("%s:%d: not a number: %q", path, line, text)
		}
		rr = append(rr, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read segment file: %w", err)
	}
	if len(rr) == 0 {
		return nil, fmt.Errorf("%s: no RR values", path)
	}
	return rr, nil
}

// LoadSegment reads one segment file and applies the band filter.
func LoadSegment(file SegmentFile, minutes int, band Band) (Segment, error) {
	rr, err := ReadRR(file.Path)
	if err != nil {
		return Segment{}, err
	}
	return Segment{
		SubjectID: file.SubjectID,
		Minutes:   minutes,
		RR:        band.Filter(rr),
	}, nil
}

// ReadIDSet loads the subject inclusion list from the first column of a
// CSV file. A header row is tolerated; blank rows and non-numeric cells
// are skipped, matching the reference bookkeeping format.
func ReadIDSet(path string) (map[int]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ID list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	ids := make(map[int]struct{})
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse ID list: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		ids[id] = struct{}{}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: no subject IDs", path)
	}
	return ids, nil
}

// TimescaleDir is one per-timescale segment directory under a group base
// directory, e.g. "5min".
type TimescaleDir struct {
	Minutes int
	Path    string
}

// DiscoverTimescales lists the subdirectories of base whose names carry
// digits, sorted by the embedded minute count.
func DiscoverTimescales(base string) ([]TimescaleDir, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("failed to read HRV base directory: %w", err)
	}

	var dirs []TimescaleDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		minutes, ok := digitsIn(entry.Name())
		if !ok {
			continue
		}
		dirs = append(dirs, TimescaleDir{
			Minutes: minutes,
			Path:    filepath.Join(base, entry.Name()),
		})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Minutes < dirs[j].Minutes })
	return dirs, nil
}

// ListSegmentFiles returns the sorted .csv/.txt files in a timescale
// directory.
func ListSegmentFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read timescale directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".txt" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// EligibleSegments filters the segment files of dir down to subjects in
// the inclusion set, pairing each path with its subject ID.
func EligibleSegments(dir string, ids map[int]struct{}) ([]SegmentFile, error) {
	files, err := ListSegmentFiles(dir)
	if err != nil {
		return nil, err
	}

	var eligible []SegmentFile
	for _, path := range files {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		id, ok := SubjectIDFromName(stem)
		if !ok {
			continue
		}
		if _, ok := ids[id]; !ok {
			continue
		}
		eligible = append(eligible, SegmentFile{SubjectID: id, Path: path})
	}
	return eligible, nil
}

// SegmentFile pairs a segment path with the subject it belongs to.
type SegmentFile struct {
	SubjectID int
	Path      string
}

func digitsIn(name string) (int, bool) {
	var b strings.Builder
	for _, ch := range name {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
