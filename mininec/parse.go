package mininec

import (
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Impedance is the feedpoint impedance reported by one solver run.
type Impedance struct {
	R float64 `json:"r"` // resistance, ohm
	X float64 `json:"x"` // reactance, ohm
}

var impedanceRe = regexp.MustCompile(`IMPEDANCE\s*=\s*\(\s*([-+0-9.Ee]+)\s*,\s*([-+0-9.Ee]+)\s*J\s*\)`)

// ParseImpedance extracts the IMPEDANCE = ( R , X J) line from solver
// output. Some option combinations legitimately omit the line, so absence
// returns nil rather than an error.
func ParseImpedance(out string) *Impedance {
	m := impedanceRe.FindStringSubmatch(out)
	if m == nil {
		return nil
	}
	r, err1 := strconv.ParseFloat(m[1], 64)
	x, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &Impedance{R: r, X: x}
}

// Row is one far-field table row in the solver's own angle convention
// (zenith angle, 0 = straight up).
type Row struct {
	ZenithDeg    float64
	AzimuthDeg   float64
	VerticalDb   float64
	HorizontalDb float64
	TotalDb      float64
}

const patternHeaderSkip = 2

// ParsePattern locates the PATTERN DATA section and parses its rows. The
// solver interleaves footer and separator lines with the data, so rows that
// do not split into at least five numeric tokens are skipped; the drop
// count is logged at debug level.
func ParsePattern(out string) []Row {
	lines := strings.Split(out, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(line, "PATTERN DATA") {
			start = i + 1 + patternHeaderSkip
			break
		}
	}
	if start < 0 || start >= len(lines) {
		return nil
	}

	var rows []Row
	dropped := 0
	for _, line := range lines[start:] {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			if len(fields) > 0 {
				dropped++
			}
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, Row{
			ZenithDeg:    vals[0],
			AzimuthDeg:   vals[1],
			VerticalDb:   vals[2],
			HorizontalDb: vals[3],
			TotalDb:      vals[4],
		})
	}
	if dropped > 0 {
		log.Debugf("mininec: skipped %d non-data lines in pattern table", dropped)
	}
	return rows
}

// ElevationFromZenith converts the solver's zenith angle to elevation above
// the horizon. Angles past the zenith wrap into 90..180, representing the
// far side of the vertical cut.
func ElevationFromZenith(zenithDeg float64) float64 {
	el := 90.0 - zenithDeg
	if el < 0 {
		el = 180.0 + el
	}
	return el
}
