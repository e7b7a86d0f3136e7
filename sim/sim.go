// Package sim composes the solver adapter and parsers into full-cut
// simulations. The solver only sweeps zenith angles 0-90; the facade hides
// that by running the vertical cut twice (azimuth 0 and 180) and mirroring
// the second run onto the back half of the cut.
package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/wiless/antennamodel/mininec"
	"github.com/wiless/antennamodel/model"
)

// PatternPoint is one far-field sample in elevation-over-horizon
// convention. Never mutated after parsing.
type PatternPoint struct {
	ElDeg   float64 `json:"el"`
	AzDeg   float64 `json:"az"`
	GainDbi float64 `json:"gain"`
}

// Options parameterises a full elevation-cut simulation.
type Options struct {
	FreqMHz   float64
	HeightM   float64
	Ground    model.Ground
	ElStepDeg float64
	AzStepDeg float64
}

// AzOptions parameterises a fixed-elevation azimuth sweep.
type AzOptions struct {
	FreqMHz   float64
	HeightM   float64
	Ground    model.Ground
	ElDeg     float64
	AzStepDeg float64
}

// Result bundles the outputs of one pattern simulation. Impedance is nil
// when the solver omitted it.
type Result struct {
	Impedance *mininec.Impedance `json:"impedance"`
	Pattern   []PatternPoint     `json:"pattern"`
}

// Simulator drives the external solver. The zero Invoker runs the real
// binary; tests inject canned output through the interface.
type Simulator struct {
	Invoker     mininec.Invoker
	Option      string  // solver output option, default far-field
	FFDistanceM float64 // far-field distance, used with far-field-absolute
}

// New returns a Simulator running the pymininec binary from PATH.
func New() *Simulator {
	return &Simulator{Invoker: mininec.Exec{}}
}

// NewWith returns a Simulator using inv for solver invocations.
func NewWith(inv mininec.Invoker) *Simulator {
	return &Simulator{Invoker: inv}
}

// matching tolerance for requested-elevation filtering; the solver rounds
// angles in its report, so exact float comparison is not safe.
const elevationTol = 0.01

// divide maps a requested angular step onto an interval count that exactly
// tiles span, rounding to the nearest valid count of at least 1. A step
// that does not divide the span evenly never leaves a ragged remainder
// angle, and a huge step never collapses to zero samples.
func divide(span, step float64) (count int, actual float64) {
	if step <= 0 || step >= span {
		return 1, span
	}
	n := int(math.Round(span / step))
	if n < 1 {
		n = 1
	}
	return n, span / float64(n)
}

func (s *Simulator) option() string {
	if s.Option == "" {
		return mininec.OptionFarField
	}
	return s.Option
}

func (s *Simulator) invoke(ctx context.Context, m *model.Model, p mininec.Params) (string, error) {
	args, err := mininec.Args(m, p)
	if err != nil {
		return "", err
	}
	out, err := s.Invoker.Invoke(ctx, args)
	if err != nil {
		return "", fmt.Errorf("sim: solver run failed: %w", err)
	}
	return out, nil
}

// SimulatePattern produces a full 0-180 degree elevation cut plus whatever
// azimuth samples the front run sweeps. Impedance is read from the front
// run only; it does not depend on the requested pattern angles.
func (s *Simulator) SimulatePattern(ctx context.Context, m *model.Model, o Options) (*Result, error) {
	nEl, elStep := divide(90, o.ElStepDeg)
	nAz, azStep := divide(360, o.AzStepDeg)

	base := mininec.Params{
		FreqMHz:     o.FreqMHz,
		HeightM:     o.HeightM,
		Ground:      o.Ground,
		Option:      s.option(),
		FFDistanceM: s.FFDistanceM,
		Theta:       mininec.Sweep{StartDeg: 0, StepDeg: elStep, Count: nEl + 1},
	}

	front := base
	front.Phi = mininec.Sweep{StartDeg: 0, StepDeg: azStep, Count: nAz}
	frontOut, err := s.invoke(ctx, m, front)
	if err != nil {
		return nil, err
	}

	back := base
	back.Phi = mininec.Sweep{StartDeg: 180, StepDeg: 0, Count: 1}
	backOut, err := s.invoke(ctx, m, back)
	if err != nil {
		return nil, err
	}

	var pattern []PatternPoint
	for _, row := range mininec.ParsePattern(frontOut) {
		pattern = append(pattern, PatternPoint{
			ElDeg:   mininec.ElevationFromZenith(row.ZenithDeg),
			AzDeg:   row.AzimuthDeg,
			GainDbi: row.TotalDb,
		})
	}
	for _, row := range mininec.ParsePattern(backOut) {
		if row.ZenithDeg < elevationTol {
			// zenith itself (el=90) is already covered by the front run
			continue
		}
		pattern = append(pattern, PatternPoint{
			ElDeg:   90.0 + row.ZenithDeg,
			AzDeg:   0,
			GainDbi: row.TotalDb,
		})
	}
	sort.Slice(pattern, func(i, j int) bool {
		if pattern[i].ElDeg != pattern[j].ElDeg {
			return pattern[i].ElDeg < pattern[j].ElDeg
		}
		return pattern[i].AzDeg < pattern[j].AzDeg
	})

	return &Result{Impedance: mininec.ParseImpedance(frontOut), Pattern: pattern}, nil
}

// SimulateAzimuthPattern sweeps azimuth over the full circle at one fixed
// elevation and returns the samples sorted by azimuth.
func (s *Simulator) SimulateAzimuthPattern(ctx context.Context, m *model.Model, o AzOptions) ([]PatternPoint, error) {
	nAz, azStep := divide(360, o.AzStepDeg)

	p := mininec.Params{
		FreqMHz:     o.FreqMHz,
		HeightM:     o.HeightM,
		Ground:      o.Ground,
		Option:      s.option(),
		FFDistanceM: s.FFDistanceM,
		Theta:       mininec.Sweep{StartDeg: 90 - o.ElDeg, StepDeg: 0, Count: 1},
		Phi:         mininec.Sweep{StartDeg: 0, StepDeg: azStep, Count: nAz + 1},
	}
	out, err := s.invoke(ctx, m, p)
	if err != nil {
		return nil, err
	}

	var pattern []PatternPoint
	for _, row := range mininec.ParsePattern(out) {
		el := mininec.ElevationFromZenith(row.ZenithDeg)
		if math.Abs(el-o.ElDeg) > elevationTol {
			continue
		}
		pattern = append(pattern, PatternPoint{ElDeg: el, AzDeg: row.AzimuthDeg, GainDbi: row.TotalDb})
	}
	sort.Slice(pattern, func(i, j int) bool { return pattern[i].AzDeg < pattern[j].AzDeg })
	return pattern, nil
}
