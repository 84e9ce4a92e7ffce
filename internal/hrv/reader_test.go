package hrv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadRR(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "101_5min.csv")
	writeFile(t, path, "rr_intervals\n812.5\n799\n845.2, extra\n\n803\n")

	rr, err := ReadRR(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{812.5, 799, 845.2, 803}, rr)
}

func TestReadRRErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	writeFile(t, empty, "header only\n")
	_, err := ReadRR(empty)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.csv")
	writeFile(t, bad, "812\nnot-a-number\n")
	_, err = ReadRR(bad)
	assert.Error(t, err)

	_, err = ReadRR(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestBandFilter(t *testing.T) {
	band := DefaultBand
	rr := []float64{250, 812, 2150, 799, 300, 2000}
	assert.Equal(t, []float64{812, 799, 300, 2000}, band.Filter(rr))
}

func TestBandValidate(t *testing.T) {
	assert.NoError(t, DefaultBand.Validate())
	assert.Error(t, Band{LowerMS: 0, UpperMS: 2000}.Validate())
	assert.Error(t, Band{LowerMS: 500, UpperMS: 400}.Validate())
}

func TestLoadSegment(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "103_5min.csv")
	writeFile(t, path, "810\n150\n825\n2400\n799\n")

	seg, err := LoadSegment(SegmentFile{SubjectID: 103, Path: path}, 5, DefaultBand)
	require.NoError(t, err)
	assert.Equal(t, 103, seg.SubjectID)
	assert.Equal(t, 5, seg.Minutes)
	assert.Equal(t, []float64{810, 825, 799}, seg.RR)

	_, err = LoadSegment(SegmentFile{SubjectID: 1, Path: filepath.Join(dir, "missing.csv")}, 5, DefaultBand)
	assert.Error(t, err)
}

func TestReadIDSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ids.csv")
	writeFile(t, path, "subject_id,notes\n101,ok\n103\n\n205,excluded later\n")

	ids, err := ReadIDSet(path)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.Contains(t, ids, 101)
	assert.Contains(t, ids, 103)
	assert.Contains(t, ids, 205)
}

func TestSubjectIDFromName(t *testing.T) {
	tests := []struct {
		stem string
		id   int
		ok   bool
	}{
		{"103_5min", 103, true},
		{"7", 7, true},
		{"subject_3", 0, false},
		{"", 0, false},
	}
	for _, test := range tests {
		id, ok := SubjectIDFromName(test.stem)
		assert.Equal(t, test.ok, ok, test.stem)
		if ok {
			assert.Equal(t, test.id, id, test.stem)
		}
	}
}

func TestDiscoverTimescales(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"10min", "1min", "5min", "notes", "20min"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, name), 0755))
	}

	dirs, err := DiscoverTimescales(base)
	require.NoError(t, err)
	require.Len(t, dirs, 4)

	var minutes []int
	for _, d := range dirs {
		minutes = append(minutes, d.Minutes)
	}
	assert.Equal(t, []int{1, 5, 10, 20}, minutes)
}

func TestEligibleSegments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "101_5min.csv"), "812\n800\n")
	writeFile(t, filepath.Join(dir, "102_5min.txt"), "790\n805\n")
	writeFile(t, filepath.Join(dir, "103_5min.csv"), "820\n815\n")
	writeFile(t, filepath.Join(dir, "readme.md"), "not a segment\n")

	ids := map[int]struct{}{101: {}, 103: {}}
	eligible, err := EligibleSegments(dir, ids)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, 101, eligible[0].SubjectID)
	assert.Equal(t, 103, eligible[1].SubjectID)
}
