// Radiation pattern of a half-wave dipole at 30ft elevation on 14.1 MHz,
// with feedpoint impedance and a received-power budget over distance.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"

	am "github.com/wiless/antennamodel"
	"github.com/wiless/antennamodel/config"
	"github.com/wiless/antennamodel/mininec"
	"github.com/wiless/antennamodel/model"
	"github.com/wiless/antennamodel/report"
	"github.com/wiless/antennamodel/sim"
)

var (
	outdir  string
	indir   string
	showGUI bool
	verbose bool

	freqMHz  = 14.1
	heightFt = 30.0
	segments = 21
)

func init() {
	flag.StringVar(&outdir, "outdir", "", "directory where reports and plots are written")
	flag.StringVar(&indir, "indir", ".", "directory where config files are read")
	flag.Float64Var(&freqMHz, "freq", freqMHz, "frequency in MHz")
	flag.Float64Var(&heightFt, "height", heightFt, "antenna height in feet")
	flag.BoolVar(&showGUI, "show-gui", false, "open generated plots in the image viewer")
	flag.BoolVar(&verbose, "v", false, "verbose logs")
	flag.Parse()
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	cfg, err := config.Read(indir)
	if err != nil {
		log.Fatal(err)
	}
	if outdir == "" {
		outdir = filepath.Join(cfg.OutDir, "output/dipole_pattern")
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Fatal(err)
	}
	ground, _ := cfg.GroundModel()

	heightM := model.FeetToMeters(heightFt)
	length := model.WavelengthM(freqMHz) / 2.0
	m := model.NewDipole(length, segments, cfg.RadiusM())

	s := sim.NewWith(mininec.Exec{Path: cfg.SolverPath})
	s.FFDistanceM = cfg.FFDistanceM
	ctx := context.Background()

	res, err := s.SimulatePattern(ctx, m, sim.Options{
		FreqMHz: freqMHz, HeightM: heightM, Ground: ground, ElStepDeg: 5, AzStepDeg: 360,
	})
	if err != nil {
		log.Fatal(err)
	}
	azPat, err := s.SimulateAzimuthPattern(ctx, m, sim.AzOptions{
		FreqMHz: freqMHz, HeightM: heightM, Ground: ground, ElDeg: 30, AzStepDeg: 5,
	})
	if err != nil {
		log.Fatal(err)
	}

	cut := am.ElevationCut(res.Pattern)
	peak := am.PeakGain(cut)

	color.Cyan("Half-wave dipole (%.2f m) at %.1f MHz, height %.2f m over %s ground", length, freqMHz, heightM, ground)
	if res.Impedance != nil {
		color.Green("Feedpoint impedance: R=%.2f X=%.2f ohm", res.Impedance.R, res.Impedance.X)
	}
	color.Yellow("Peak gain: %.2f dBi", peak)

	params := fmt.Sprintf("frequency = %g MHz; height = %.2f m; ground = %s; segments = %d; radius = %g m",
		freqMHz, heightM, ground, segments, cfg.RadiusM())

	rep := report.New("dipole_pattern")
	if res.Impedance != nil {
		rep.AddTable("Feedpoint Impedance", params,
			[]string{"R (ohm)", "X (ohm)"},
			[][]string{{fmt.Sprintf("%.2f", res.Impedance.R), fmt.Sprintf("%.2f", res.Impedance.X)}})
	}

	var rows [][]string
	for _, p := range cut {
		rows = append(rows, []string{fmt.Sprintf("%g", p.ElDeg), fmt.Sprintf("%.2f", p.GainDbi-peak)})
	}
	rep.AddTable("Relative Gain over Elevation (az=0)", params,
		[]string{"Elevation (deg)", "Relative Gain (dB)"}, rows)

	// link budget at peak gain towards an isotropic receiver; SNR against
	// the thermal floor of an SSB receiver bandwidth
	lb := am.LinkBudget{TxPowerDBm: 30, TxGainDbi: peak, FreqGHz: freqMHz / 1000.0}
	noise := am.NoiseFloorDbm(0.0027)
	var prows [][]string
	for _, km := range []float64{1, 10, 100, 500} {
		prx, _, err := lb.ReceivedPowerDbm(vlib.Location3D{Z: heightM}, vlib.Location3D{X: km * 1000, Z: heightM})
		if err != nil {
			log.Fatal(err)
		}
		prows = append(prows, []string{
			fmt.Sprintf("%g", km), fmt.Sprintf("%.1f", prx), fmt.Sprintf("%.1f", prx-noise),
		})
	}
	rep.AddTable("Received Power vs Distance", "Ptx = 30 dBm; free-space path; isotropic receiver; 2.7 kHz noise bandwidth",
		[]string{"Distance (km)", "Prx (dBm)", "SNR (dB)"}, prows)

	png := filepath.Join(outdir, "dipole_pattern.png")
	if err := report.SavePatternPNG(png, cut, azPat); err != nil {
		log.Fatal(err)
	}
	rep.AddPlot("Elevation and azimuth patterns", filepath.Base(png))

	if err := report.ExportMatlab(outdir, "dipole_pattern", res.Pattern); err != nil {
		log.Fatal(err)
	}
	vlib.SaveStructure(res, filepath.Join(outdir, "dipole_pattern.json"), true)

	if _, err := rep.Save(outdir); err != nil {
		log.Fatal(err)
	}
	if showGUI {
		report.OpenViewer(png)
	}
}
