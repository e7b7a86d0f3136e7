package mininec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/antennamodel/mininec"
)

const sampleOutput = `                   ****************************************
                     MINI-NUMERICAL ELECTROMAGNETICS CODE
                   ****************************************

FREQUENCY (MHZ): 14.1
    WAVE LENGTH =  21.26187  METERS

ENVIRONMENT (+1 FOR FREE SPACE, -1 FOR GROUND PLANE): -1

PULSE  1      VOLTAGE = ( 1 , 0J)
              CURRENT = (1.024137E-02 , 7.396239E-03J)
              IMPEDANCE = ( 68.74317 , -49.64125 J)

********************    FAR FIELD    ********************

PATTERN DATA
ZENITH        AZIMUTH       VERTICAL      HORIZONTAL    TOTAL
 ANGLE         ANGLE        PATTERN (DB)  PATTERN (DB)  PATTERN (DB)
 0             0            -999          -6.169516     -6.169516
 10            0            -13.927785    -6.complete    garbage
 20            0            -12.630466    -6.481712     -5.519519
 30            0            -11.377939    -6.731353     -5.111589

 40            0            -10.180346    -7.031125     -5.204442
`

func TestParseImpedance(t *testing.T) {
	imp := mininec.ParseImpedance(sampleOutput)
	require.NotNil(t, imp)
	assert.InDelta(t, 68.74317, imp.R, 1e-9)
	assert.InDelta(t, -49.64125, imp.X, 1e-9)
}

func TestParseImpedanceScientificNotation(t *testing.T) {
	imp := mininec.ParseImpedance("IMPEDANCE = ( 6.874317E+01 , -4.964125E+01 J)")
	require.NotNil(t, imp)
	assert.InDelta(t, 68.74317, imp.R, 1e-5)
	assert.InDelta(t, -49.64125, imp.X, 1e-5)
}

func TestParseImpedanceAbsent(t *testing.T) {
	assert.Nil(t, mininec.ParseImpedance("PATTERN DATA\nno impedance here"))
}

func TestParsePattern(t *testing.T) {
	rows := mininec.ParsePattern(sampleOutput)
	// the malformed 10-degree row is dropped, the blank line is ignored
	require.Len(t, rows, 4)
	assert.Equal(t, 0.0, rows[0].ZenithDeg)
	assert.InDelta(t, -6.169516, rows[0].TotalDb, 1e-9)
	assert.Equal(t, 20.0, rows[1].ZenithDeg)
	assert.InDelta(t, -12.630466, rows[1].VerticalDb, 1e-9)
	assert.InDelta(t, -6.481712, rows[1].HorizontalDb, 1e-9)
	assert.Equal(t, 40.0, rows[3].ZenithDeg)
}

func TestParsePatternNoSection(t *testing.T) {
	assert.Nil(t, mininec.ParsePattern("IMPEDANCE = ( 50 , 0 J)"))
}

func TestElevationFromZenith(t *testing.T) {
	assert.Equal(t, 90.0, mininec.ElevationFromZenith(0))
	assert.Equal(t, 45.0, mininec.ElevationFromZenith(45))
	assert.Equal(t, 0.0, mininec.ElevationFromZenith(90))
	// past the zenith the cut wraps onto the far side
	assert.Equal(t, 175.0, mininec.ElevationFromZenith(95))
	assert.Equal(t, 150.0, mininec.ElevationFromZenith(120))
}
