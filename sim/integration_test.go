package sim_test

import (
	"context"
	"math"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/antennamodel/mininec"
	"github.com/wiless/antennamodel/model"
	"github.com/wiless/antennamodel/sim"
)

// These tests run the real solver and are skipped when it is not on PATH.

func requireSolver(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(mininec.DefaultSolver); err != nil {
		t.Skipf("%s not installed", mininec.DefaultSolver)
	}
}

func referenceDipole(t *testing.T) *model.Model {
	t.Helper()
	m := model.NewDipole(model.ResonantDipoleLength(14.1), 21, 0.001)
	require.NoError(t, m.Validate())
	return m
}

func TestFreeSpaceDipoleBroadsideGain(t *testing.T) {
	requireSolver(t)

	s := sim.New()
	res, err := s.SimulatePattern(context.Background(), referenceDipole(t), sim.Options{
		FreqMHz: 14.1, HeightM: 0, Ground: model.GroundFree, ElStepDeg: 1, AzStepDeg: 1,
	})
	require.NoError(t, err)

	// broadside gain of a thin half-wave dipole in free space is
	// independent of elevation in the az=0 plane and close to 2.15 dBi
	gains := map[float64]float64{}
	for _, p := range res.Pattern {
		if p.AzDeg == 0 && (p.ElDeg == 20 || p.ElDeg == 30 || p.ElDeg == 40) {
			gains[p.ElDeg] = p.GainDbi
		}
	}
	require.Len(t, gains, 3)
	for _, g := range gains {
		assert.InDelta(t, gains[20], g, 1e-6)
	}
	assert.InDelta(t, 2.15, gains[20], 0.05)
}

func TestReferenceImpedanceAt10m(t *testing.T) {
	requireSolver(t)

	s := sim.New()
	res, err := s.SimulatePattern(context.Background(), referenceDipole(t), sim.Options{
		FreqMHz: 14.1, HeightM: 10, Ground: model.GroundAverage, ElStepDeg: 45, AzStepDeg: 360,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Impedance)
	assert.InEpsilon(t, 68.74317, res.Impedance.R, 0.01)
	assert.InEpsilon(t, 49.64125, math.Abs(res.Impedance.X), 0.01)
	assert.Less(t, res.Impedance.X, 0.0)
}

func TestPhasedPairSymmetryAndZenithNull(t *testing.T) {
	requireSolver(t)

	// two dipoles 0.125 wavelength apart fed out of phase: bidirectional
	// broadside pattern, symmetric in azimuth, deep null at the zenith
	lam := 300.0 / 14.1
	m := model.NewPhasedPair(model.ResonantDipoleLength(14.1), 0.125*lam, 21, 0.001, 1, -1)
	require.NoError(t, m.Validate())

	s := sim.New()
	ctx := context.Background()

	azPat, err := s.SimulateAzimuthPattern(ctx, m, sim.AzOptions{
		FreqMHz: 14.1, HeightM: 0, Ground: model.GroundFree, ElDeg: 30, AzStepDeg: 5,
	})
	require.NoError(t, err)
	var gain0, gain180 float64
	for _, p := range azPat {
		if p.AzDeg == 0 {
			gain0 = p.GainDbi
		}
		if p.AzDeg == 180 {
			gain180 = p.GainDbi
		}
	}
	assert.InDelta(t, gain0, gain180, 1e-3)

	res, err := s.SimulatePattern(ctx, m, sim.Options{
		FreqMHz: 14.1, HeightM: 0, Ground: model.GroundFree, ElStepDeg: 5, AzStepDeg: 360,
	})
	require.NoError(t, err)
	bestDiff, zenithGain := math.Inf(1), 0.0
	for _, p := range res.Pattern {
		if d := math.Abs(p.ElDeg - 90); d < bestDiff {
			bestDiff, zenithGain = d, p.GainDbi
		}
	}
	assert.Less(t, zenithGain, gain0-20.0)
}
