package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/antennamodel"
	"github.com/wiless/antennamodel/config"
	"github.com/wiless/antennamodel/model"
)

func TestSetDefault(t *testing.T) {
	var d config.Defaults
	d.SetDefault()
	assert.Equal(t, 10, d.Segments)
	assert.Equal(t, 0.001, d.RadiusM())
	g, err := d.GroundModel()
	require.NoError(t, err)
	assert.Equal(t, model.GroundAverage, g)
	assert.Equal(t, "pymininec", d.SolverPath)
}

func TestFromMap(t *testing.T) {
	var d config.Defaults
	d.SetDefault()
	err := config.FromMap(&d, antennamodel.GenericStruct{
		"segments": 21,
		"ground":   "poor",
		"radiusmm": "2.5", // weakly typed input
	})
	require.NoError(t, err)
	assert.Equal(t, 21, d.Segments)
	assert.Equal(t, "poor", d.Ground)
	assert.Equal(t, 0.0025, d.RadiusM())
	// untouched keys keep their defaults
	assert.Equal(t, "pymininec", d.SolverPath)
}

func TestFromMapIgnoresUnknownKeys(t *testing.T) {
	var d config.Defaults
	d.SetDefault()
	err := config.FromMap(&d, antennamodel.GenericStruct{"nosuchkey": 1})
	require.NoError(t, err)
	assert.Equal(t, 10, d.Segments)
}

func TestGroundModelRejectsBadName(t *testing.T) {
	var d config.Defaults
	d.SetDefault()
	d.Ground = "swamp"
	_, err := d.GroundModel()
	assert.Error(t, err)
}
