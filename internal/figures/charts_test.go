package figures

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiolab/hra-cli/internal/stats"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleRows() []stats.EffectRow {
	return []stats.EffectRow{
		{Measure: "SD1", TestUsed: stats.TestStudentT, EffectSize: 0.42, Interpretation: "Medium"},
		{Measure: "Guzik Index", TestUsed: stats.TestMannWhitney, EffectSize: 0.61, Significant: true, Interpretation: "Large"},
	}
}

func TestRenderEffectSizes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderEffectSizes(&buf, "oHS vs CHF, 5 min, 100 bins", sampleRows()))
	assert.Equal(t, pngMagic, buf.Bytes()[:4])
}

func TestRenderEffectSizesEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderEffectSizes(&buf, "empty", nil))
}

func TestRenderSensitivity(t *testing.T) {
	var buf bytes.Buffer
	series := map[string][]float64{
		"1 min": {12.5, 14.0, 16.5},
		"5 min": {10.1, 11.2, 12.9},
	}
	require.NoError(t, RenderSensitivity(&buf, "HB AMI sensitivity", []int{25, 50, 100}, series))
	assert.Equal(t, pngMagic, buf.Bytes()[:4])
}

func TestRenderSensitivityLengthMismatch(t *testing.T) {
	var buf bytes.Buffer
	series := map[string][]float64{"1 min": {12.5}}
	assert.Error(t, RenderSensitivity(&buf, "bad", []int{25, 50}, series))
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figs", "effect_sizes.png")

	err := SavePNG(path, func(w io.Writer) error {
		return RenderEffectSizes(w, "saved", sampleRows())
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, data[:4])
}
