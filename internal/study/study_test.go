package study

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.LoadDefaults())

	s, err := r.Get("ohs-vs-chf")
	require.NoError(t, err)
	assert.Equal(t, "oHS_vs_CHF", s.Slug())
	assert.Equal(t, DefaultBinCounts, s.BinCounts)
	assert.Equal(t, []int{1, 5, 10, 20}, s.Timescales)

	_, err = r.Get("yhs-vs-ohs")
	require.NoError(t, err)

	_, err = r.Get("unknown")
	assert.Error(t, err)
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	content := `name: minimal
groups:
  - label: A
    data_dir: data/A
    ids_file: ids/A.csv
  - label: B
    data_dir: data/B
    ids_file: ids/B.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r := NewRegistry()
	require.NoError(t, r.LoadFromFile(path))

	s, err := r.Get("minimal")
	require.NoError(t, err)
	assert.Equal(t, 300.0, s.Band.LowerMS)
	assert.Equal(t, 2000.0, s.Band.UpperMS)
	assert.Equal(t, DefaultBinCounts, s.BinCounts)
	assert.Equal(t, 1000, s.KDEGridSize)
	assert.True(t, s.WantsTimescale(17)) // no restriction configured
}

func TestValidateErrors(t *testing.T) {
	valid := func() Study {
		return Study{
			Name: "s",
			Groups: []Group{
				{Label: "A", DataDir: "a", IDsFile: "a.csv"},
				{Label: "B", DataDir: "b", IDsFile: "b.csv"},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Study)
	}{
		{"no name", func(s *Study) { s.Name = "" }},
		{"one group", func(s *Study) { s.Groups = s.Groups[:1] }},
		{"missing label", func(s *Study) { s.Groups[0].Label = "" }},
		{"missing data dir", func(s *Study) { s.Groups[1].DataDir = "" }},
		{"missing ids file", func(s *Study) { s.Groups[1].IDsFile = "" }},
		{"inverted band", func(s *Study) { s.Band = BandConfig{LowerMS: 900, UpperMS: 400} }},
		{"bad bin count", func(s *Study) { s.BinCounts = []int{1} }},
		{"tiny kde grid", func(s *Study) { s.KDEGridSize = 4 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := valid()
			test.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestWantsTimescale(t *testing.T) {
	s := Study{Timescales: []int{1, 5}}
	assert.True(t, s.WantsTimescale(5))
	assert.False(t, s.WantsTimescale(10))
}

func TestListWithDescriptions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.LoadDefaults())

	described := r.ListWithDescriptions()
	assert.Len(t, described, len(r.List()))
	assert.NotEmpty(t, described["yhs-vs-ohs"])
}
