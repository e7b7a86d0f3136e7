package antennamodel

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/wiless/antennamodel/mininec"
	"github.com/wiless/antennamodel/model"
	"github.com/wiless/antennamodel/sim"
)

// HeightImpedance is one row of a feedpoint-impedance-vs-height sweep.
type HeightImpedance struct {
	HeightM   float64           `json:"height"`
	Impedance mininec.Impedance `json:"impedance"`
}

// HeightPattern holds one simulated cut together with the height it was
// taken at. Impedance is nil for azimuth cuts.
type HeightPattern struct {
	HeightM   float64            `json:"height"`
	Pattern   []sim.PatternPoint `json:"pattern"`
	Impedance *mininec.Impedance `json:"impedance"`
}

// ImpedanceVsHeights simulates the model at each height and collects the
// feedpoint impedances in the given order.
func ImpedanceVsHeights(ctx context.Context, s *sim.Simulator, m *model.Model, o sim.Options, heightsM []float64) ([]HeightImpedance, error) {
	out := make([]HeightImpedance, 0, len(heightsM))
	for _, h := range heightsM {
		oh := o
		oh.HeightM = h
		res, err := s.SimulatePattern(ctx, m, oh)
		if err != nil {
			return nil, err
		}
		if res.Impedance == nil {
			return nil, fmt.Errorf("antennamodel: solver reported no impedance at height %gm", h)
		}
		log.WithFields(log.Fields{"height": h, "R": res.Impedance.R, "X": res.Impedance.X}).Debug("impedance sample")
		out = append(out, HeightImpedance{HeightM: h, Impedance: *res.Impedance})
	}
	return out, nil
}

// ElevationPatterns simulates a full elevation cut per height.
func ElevationPatterns(ctx context.Context, s *sim.Simulator, m *model.Model, o sim.Options, heightsM []float64) ([]HeightPattern, error) {
	out := make([]HeightPattern, 0, len(heightsM))
	for _, h := range heightsM {
		oh := o
		oh.HeightM = h
		res, err := s.SimulatePattern(ctx, m, oh)
		if err != nil {
			return nil, err
		}
		out = append(out, HeightPattern{HeightM: h, Pattern: ElevationCut(res.Pattern), Impedance: res.Impedance})
	}
	return out, nil
}

// AzimuthPatterns simulates a fixed-elevation azimuth sweep per height.
func AzimuthPatterns(ctx context.Context, s *sim.Simulator, m *model.Model, o sim.AzOptions, heightsM []float64) ([]HeightPattern, error) {
	out := make([]HeightPattern, 0, len(heightsM))
	for _, h := range heightsM {
		oh := o
		oh.HeightM = h
		pts, err := s.SimulateAzimuthPattern(ctx, m, oh)
		if err != nil {
			return nil, err
		}
		out = append(out, HeightPattern{HeightM: h, Pattern: pts})
	}
	return out, nil
}

// azimuth tolerance when slicing a cut out of a multi-azimuth pattern
const azTol = 0.01

// ElevationCut keeps only the azimuth-0 plane of a pattern. Mirrored
// samples above 90 degrees elevation already sit on that plane.
func ElevationCut(pts []sim.PatternPoint) []sim.PatternPoint {
	var cut []sim.PatternPoint
	for _, p := range pts {
		if math.Abs(p.AzDeg) <= azTol {
			cut = append(cut, p)
		}
	}
	return cut
}

// GainAt returns the gain of the sample nearest to azDeg.
func GainAt(pts []sim.PatternPoint, azDeg float64) float64 {
	if len(pts) == 0 {
		return math.NaN()
	}
	best := pts[0]
	for _, p := range pts[1:] {
		if math.Abs(p.AzDeg-azDeg) < math.Abs(best.AzDeg-azDeg) {
			best = p
		}
	}
	return best.GainDbi
}

// PeakGain returns the largest gain in the pattern.
func PeakGain(pts []sim.PatternPoint) float64 {
	if len(pts) == 0 {
		return math.NaN()
	}
	gains := make([]float64, len(pts))
	for i, p := range pts {
		gains[i] = p.GainDbi
	}
	return floats.Max(gains)
}

// ForwardGain is the gain along azimuth 0.
func ForwardGain(pts []sim.PatternPoint) float64 {
	return GainAt(pts, 0)
}

// FrontToBack is the forward gain minus the gain along azimuth 180.
func FrontToBack(pts []sim.PatternPoint) float64 {
	return GainAt(pts, 0) - GainAt(pts, 180)
}
