// Package config loads experiment defaults from config files and from
// generic key/value maps.
package config

import (
	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/wiless/antennamodel"
	"github.com/wiless/antennamodel/model"
)

// Defaults are the knobs shared by every experiment program. Values not
// present in the config file keep the SetDefault values.
type Defaults struct {
	Segments    int     `mapstructure:"segments"`
	RadiusMM    float64 `mapstructure:"radiusmm"`
	Ground      string  `mapstructure:"ground"`
	SolverPath  string  `mapstructure:"solverpath"`
	FFDistanceM float64 `mapstructure:"ffdistance"`
	OutDir      string  `mapstructure:"outdir"`
}

// SetDefault resets to the standard experiment setup: 10 segments per
// wire, 1mm wire radius, average ground.
func (d *Defaults) SetDefault() {
	d.Segments = 10
	d.RadiusMM = 1.0
	d.Ground = model.GroundAverage.String()
	d.SolverPath = "pymininec"
	d.FFDistanceM = 1000
	d.OutDir = "."
}

// RadiusM is the wire radius in metres.
func (d Defaults) RadiusM() float64 { return d.RadiusMM / 1000.0 }

// GroundModel parses the configured ground name.
func (d Defaults) GroundModel() (model.Ground, error) {
	return model.ParseGround(d.Ground)
}

// Read loads "antennamodel.{yml,json,toml}" from indir, falling back to
// the working directory. A missing file is not an error; the defaults
// stand.
func Read(indir string) (Defaults, error) {
	var d Defaults
	d.SetDefault()

	viper.SetConfigName("antennamodel")
	if indir != "" {
		viper.AddConfigPath(indir)
	}
	viper.AddConfigPath(".")

	viper.SetDefault("segments", d.Segments)
	viper.SetDefault("radiusmm", d.RadiusMM)
	viper.SetDefault("ground", d.Ground)
	viper.SetDefault("solverpath", d.SolverPath)
	viper.SetDefault("ffdistance", d.FFDistanceM)
	viper.SetDefault("outdir", d.OutDir)

	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Debug("no config file, using defaults")
	} else {
		log.WithField("file", viper.ConfigFileUsed()).Info("loaded config")
	}
	if err := viper.Unmarshal(&d); err != nil {
		return d, err
	}
	_, err := d.GroundModel()
	return d, err
}

// FromMap overlays values from a generic map onto d. Keys follow the
// mapstructure tags; unknown keys are ignored.
func FromMap(d *Defaults, m antennamodel.GenericStruct) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           d,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]interface{}(m))
}
