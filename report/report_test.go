package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/antennamodel/report"
	"github.com/wiless/antennamodel/sim"
)

func TestSaveWritesMarkdown(t *testing.T) {
	dir := t.TempDir()

	r := report.New("Dipole pattern")
	r.AddParagraph("Resonant dipole over average ground.")
	r.AddTable("Impedance vs height", "f=14.1MHz, 10 segments",
		[]string{"Height (m)", "R (ohm)", "X (ohm)"},
		[][]string{
			{"5", "55.2", "-12.3"},
			{"10", "68.7", "-49.6"},
		})
	r.AddPlot("pattern at 10m", "pattern-10m.png")

	path, err := r.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.md"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(b)
	assert.True(t, strings.HasPrefix(md, "# Dipole pattern\n"))
	assert.Contains(t, md, "## Impedance vs height")
	assert.Contains(t, md, "f=14.1MHz, 10 segments")
	assert.Contains(t, md, "| Height (m) | R (ohm) | X (ohm) |")
	assert.Contains(t, md, "| --- | --- | --- |")
	assert.Contains(t, md, "| 10 | 68.7 | -49.6 |")
	assert.Contains(t, md, "![pattern at 10m](pattern-10m.png)")
}

func TestBoldPeaks(t *testing.T) {
	rows := [][]string{
		{"5", "4.91", "11.2"},
		{"10", "6.20", "9.8"},
		{"15", "5.75", "14.0"},
	}
	out := report.BoldPeaks(rows, 1, 2)
	assert.Equal(t, "**6.20**", out[1][1])
	assert.Equal(t, "**14.0**", out[2][2])
	// column 0 untouched
	assert.Equal(t, "10", out[1][0])
}

func TestBoldPeaksSkipsNonNumeric(t *testing.T) {
	rows := [][]string{
		{"a", "n/a"},
		{"b", "3.1"},
	}
	out := report.BoldPeaks(rows, 1)
	assert.Equal(t, "**3.1**", out[1][1])
	assert.Equal(t, "n/a", out[0][1])
}

func TestRadialScale(t *testing.T) {
	assert.InDelta(t, 1.0, report.RadialScale(6.2, 6.2), 1e-12)
	assert.InDelta(t, 0.89, report.RadialScale(4.2, 6.2), 1e-12)
	assert.InDelta(t, 0.89*0.89, report.RadialScale(2.2, 6.2), 1e-12)
}

func TestSavePatternPNG(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pattern.png")

	var el, az []sim.PatternPoint
	for d := 0.0; d <= 180; d += 10 {
		el = append(el, sim.PatternPoint{ElDeg: d, AzDeg: 0, GainDbi: 2.15 - d/50})
	}
	for d := 0.0; d <= 360; d += 10 {
		az = append(az, sim.PatternPoint{ElDeg: 30, AzDeg: d, GainDbi: 1.0 - d/100})
	}

	require.NoError(t, report.SavePatternPNG(file, el, az))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "PNG should not be empty")
}

func TestSavePatternsPNGMultiSeries(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "compare.png")

	var yagi, dipole []sim.PatternPoint
	for d := 0.0; d <= 360; d += 15 {
		yagi = append(yagi, sim.PatternPoint{ElDeg: 30, AzDeg: d, GainDbi: 6 - d/60})
		dipole = append(dipole, sim.PatternPoint{ElDeg: 30, AzDeg: d, GainDbi: 2.15})
	}
	err := report.SavePatternsPNG(file, []report.Series{
		{Label: "Yagi", Azimuth: yagi},
		{Label: "Dipole", Azimuth: dipole, Dashed: true},
	})
	require.NoError(t, err)
	_, err = os.Stat(file)
	require.NoError(t, err)
}

func TestSaveLineChartPNG(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gain.png")
	err := report.SaveLineChartPNG(file, "Gain vs detune", "Detune (%)", "Gain (dBi)",
		[]report.LineSeries{
			{Label: "0.10λ", Points: []report.XY{{X: 0, Y: 5.1}, {X: 5, Y: 6.0}, {X: 10, Y: 5.4}}},
			{Label: "Dipole", Points: []report.XY{{X: 0, Y: 2.15}, {X: 10, Y: 2.15}}, Dashed: true},
		})
	require.NoError(t, err)
	_, err = os.Stat(file)
	require.NoError(t, err)
}

func TestExportMatlab(t *testing.T) {
	dir := t.TempDir()
	pts := []sim.PatternPoint{{ElDeg: 10, AzDeg: 0, GainDbi: 1.5}}
	require.NoError(t, report.ExportMatlab(dir, "pattern", pts))
}
