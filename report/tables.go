package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wiless/antennamodel/sim"
)

const angleTol = 0.01

func gainNear(pts []sim.PatternPoint, angle float64, angleOf func(sim.PatternPoint) float64) (float64, bool) {
	for _, p := range pts {
		if math.Abs(angleOf(p)-angle) <= angleTol {
			return p.GainDbi, true
		}
	}
	return 0, false
}

// ElevationGainTable tabulates gain at 5-degree elevation steps over the
// full 0-180 cut, one column per labelled pattern, with each column's
// peak in bold. Angles a pattern has no sample for are left blank.
func ElevationGainTable(labels []string, patterns [][]sim.PatternPoint) (header []string, rows [][]string) {
	header = append([]string{"Elevation (deg)"}, labels...)
	for el := 0; el <= 180; el += 5 {
		row := []string{strconv.Itoa(el)}
		for _, pat := range patterns {
			if g, ok := gainNear(pat, float64(el), func(p sim.PatternPoint) float64 { return p.ElDeg }); ok {
				row = append(row, fmt.Sprintf("%.3f", g))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	cols := make([]int, len(labels))
	for i := range cols {
		cols[i] = i + 1
	}
	return header, BoldPeaks(rows, cols...)
}

// AzimuthGainTable tabulates gain per azimuth sample of the first
// pattern, one column per labelled pattern.
func AzimuthGainTable(labels []string, patterns [][]sim.PatternPoint) (header []string, rows [][]string) {
	header = append([]string{"Azimuth (deg)"}, labels...)
	if len(patterns) == 0 || len(patterns[0]) == 0 {
		return header, nil
	}
	for _, ref := range patterns[0] {
		row := []string{fmt.Sprintf("%g", ref.AzDeg)}
		for _, pat := range patterns {
			if g, ok := gainNear(pat, ref.AzDeg, func(p sim.PatternPoint) float64 { return p.AzDeg }); ok {
				row = append(row, fmt.Sprintf("%.3f", g))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}
