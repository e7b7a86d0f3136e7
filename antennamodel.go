// Package antennamodel models wire antennas over ground and evaluates
// them with an external method-of-moments solver. The root package holds
// the sweep drivers and link-budget helpers; geometry lives in model,
// solver plumbing in mininec, the simulation facade in sim.
package antennamodel

import (
	"math"

	CM "github.com/wiless/channelmodel"
	"github.com/wiless/vlib"

	"github.com/wiless/antennamodel/model"
)

type GenericStruct map[string]interface{}

// LinkBudget evaluates received power between two sites. With no pathloss
// model attached it falls back to free-space loss.
type LinkBudget struct {
	TxPowerDBm float64
	TxGainDbi  float64
	RxGainDbi  float64
	FreqGHz    float64
	PL         CM.PLModel
}

// ReceivedPowerDbm returns the received power at rx for a transmitter at
// tx, and whether the link is line-of-sight. The attached pathloss model
// is used when it supports the configured frequency; free-space loss is
// always line-of-sight.
func (lb *LinkBudget) ReceivedPowerDbm(tx, rx vlib.Location3D) (prxDbm float64, isLOS bool, err error) {
	var lossDb float64
	isLOS = true
	if lb.PL != nil && lb.PL.IsSupported(lb.FreqGHz) {
		lossDb, isLOS, err = lb.PL.PLbetweenIndoor(tx, rx, 0)
		if err != nil {
			return math.NaN(), false, err
		}
	} else {
		lossDb = lb.FreeSpaceLossDb(tx.DistanceFrom(rx))
	}
	prxDbm = lb.TxPowerDBm + lb.TxGainDbi + lb.RxGainDbi - lossDb
	return prxDbm, isLOS, nil
}

// FreeSpaceLossDb is 20log10(4*pi*d/lambda) for a path of dM metres.
// Paths shorter than a millimetre are treated as lossless.
func (lb *LinkBudget) FreeSpaceLossDb(dM float64) float64 {
	if dM < 1e-3 {
		return 0
	}
	lambda := model.SpeedOfLight / (lb.FreqGHz * 1e9)
	return 20 * math.Log10(4*math.Pi*dM/lambda)
}

// NoisePSDdBmPerHz is the thermal noise density at room temperature.
const NoisePSDdBmPerHz = -173.9

// NoiseFloorDbm returns the thermal noise power over bwMHz of bandwidth.
func NoiseFloorDbm(bwMHz float64) float64 {
	return NoisePSDdBmPerHz + vlib.Db(bwMHz*1e6)
}
