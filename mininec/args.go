// Package mininec adapts an antenna model to the pymininec command-line
// solver: it serialises geometry and simulation parameters into the argument
// vector, runs the solver as a subprocess, and parses the text report back
// into structured results. All parsing fragility is confined to this package.
package mininec

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/wiless/antennamodel/model"
)

// Output options understood by the solver.
const (
	OptionFarField         = "far-field"          // gains in dBi
	OptionFarFieldAbsolute = "far-field-absolute" // E-field at FFDistanceM
)

// Sweep is one start,step,count angular sweep argument.
type Sweep struct {
	StartDeg float64
	StepDeg  float64
	Count    int
}

func (s Sweep) arg() string {
	return fmt.Sprintf("%s,%s,%d", ftoa(s.StartDeg), ftoa(s.StepDeg), s.Count)
}

// Params carries everything beyond geometry that one solver invocation needs.
type Params struct {
	FreqMHz     float64
	HeightM     float64
	Ground      model.Ground
	Theta       Sweep // zenith angle sweep, 0 = straight up
	Phi         Sweep // azimuth angle sweep
	Option      string
	FFDistanceM float64
}

// ftoa renders an angle/frequency argument without a forced precision.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// coord renders a coordinate to fixed 6-decimal precision so the solver
// never sees ambiguous wire definitions.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// voltage renders a complex excitation as real or real±imagj.
func voltage(v complex128) string {
	if imag(v) == 0 {
		return strconv.FormatFloat(real(v), 'g', -1, 64)
	}
	return fmt.Sprintf("%g%+gj", real(v), imag(v))
}

// Args serialises m plus p into the solver argument vector. The height
// offset is applied uniformly to both z endpoints of every wire. Feedpoint
// bounds are validated here, at simulation time.
func Args(m *model.Model, p Params) ([]string, error) {
	if len(m.Elements) == 0 {
		return nil, fmt.Errorf("mininec: model has no elements")
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("mininec: %w", err)
	}

	args := []string{"-f", ftoa(p.FreqMHz)}

	for _, el := range m.Elements {
		w := fmt.Sprintf("%d,%s,%s,%s,%s,%s,%s,%s",
			el.Segments,
			coord(el.P1.X), coord(el.P1.Y), coord(el.P1.Z+p.HeightM),
			coord(el.P2.X), coord(el.P2.Y), coord(el.P2.Z+p.HeightM),
			coord(el.RadiusM))
		args = append(args, "-w", w)
	}

	if eps, sigma, ok := p.Ground.Medium(); ok {
		args = append(args, fmt.Sprintf("--medium=%g,%g,0", eps, sigma))
	}

	if len(m.Feedpoints) == 0 {
		// Deprecated path for models built without explicit feedpoints:
		// excite the centre of the first element.
		pulse := pulseIndex(model.CenterSegment(m.Elements[0].Segments))
		log.Warnf("mininec: model has no feedpoints, falling back to default excitation at pulse %d on wire 1", pulse)
		args = append(args, "--excitation-pulse", fmt.Sprintf("%d,1", pulse))
	} else {
		for _, fp := range m.Feedpoints {
			args = append(args,
				"--excitation-pulse", fmt.Sprintf("%d,%d", pulseIndex(fp.Segment), fp.Element+1),
				"--excitation-voltage", voltage(fp.Voltage))
		}
	}

	opt := p.Option
	if opt == "" {
		opt = OptionFarField
	}
	args = append(args, "--option", opt)
	if opt == OptionFarFieldAbsolute {
		ffd := p.FFDistanceM
		if ffd <= 0 {
			ffd = 1000
		}
		args = append(args, "--ff-distance", strconv.Itoa(int(ffd)))
	}

	args = append(args,
		"--theta", p.Theta.arg(),
		"--phi", p.Phi.arg())
	return args, nil
}

// pulseIndex maps a wire segment onto the solver's pulse numbering: pulses
// sit on junctions between sub-segments, so segment s feeds pulse s-1,
// clamped to the first junction.
func pulseIndex(segment int) int {
	if segment-1 < 1 {
		return 1
	}
	return segment - 1
}
