// 8JK antenna: two 44ft driven elements spaced 6m, fed 180 degrees
// out of phase, on 14.1 MHz. Compared against a single dipole at 10m.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

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

	freqMHz   = 14.1
	elemLenFt = 44.0
	spacingM  = 6.0 // roughly 0.3 wavelength on 20m
	segments  = 21
	elFixed   = 30.0
	heights   = []float64{5, 10, 15, 20}
	cmpHeight = 10.0
)

func init() {
	flag.StringVar(&outdir, "outdir", "", "directory where reports and plots are written")
	flag.StringVar(&indir, "indir", ".", "directory where config files are read")
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
		outdir = filepath.Join(cfg.OutDir, "output/8_jk")
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Fatal(err)
	}
	ground, _ := cfg.GroundModel()

	lengthM := model.FeetToMeters(elemLenFt)
	m := model.NewPhasedPair(lengthM, spacingM, segments, cfg.RadiusM(), 1, -1)
	if err := m.Validate(); err != nil {
		log.Fatal(err)
	}

	s := sim.NewWith(mininec.Exec{Path: cfg.SolverPath})
	s.FFDistanceM = cfg.FFDistanceM
	ctx := context.Background()
	rep := report.New("8_jk")
	params := fmt.Sprintf("frequency = %g MHz; elements = 2 x %g ft; spacing = %g m; ground = %s; segments = %d; radius = %g m",
		freqMHz, elemLenFt, spacingM, ground, segments, cfg.RadiusM())

	opts := sim.Options{FreqMHz: freqMHz, Ground: ground, ElStepDeg: 5, AzStepDeg: 360}
	azOpts := sim.AzOptions{FreqMHz: freqMHz, Ground: ground, ElDeg: elFixed, AzStepDeg: 5}

	imps, err := am.ImpedanceVsHeights(ctx, s, m, opts, heights)
	if err != nil {
		log.Fatal(err)
	}
	var impRows [][]string
	for _, r := range imps {
		impRows = append(impRows, []string{
			fmt.Sprintf("%g", r.HeightM), fmt.Sprintf("%.2f", r.Impedance.R), fmt.Sprintf("%.2f", r.Impedance.X),
		})
		color.Green("h=%5.1fm: R=%8.2f X=%8.2f", r.HeightM, r.Impedance.R, r.Impedance.X)
	}
	rep.AddTable("Feedpoint Impedance vs Height", params,
		[]string{"Height (m)", "R (ohm)", "X (ohm)"}, impRows)

	elPats, err := am.ElevationPatterns(ctx, s, m, opts, heights)
	if err != nil {
		log.Fatal(err)
	}
	azPats, err := am.AzimuthPatterns(ctx, s, m, azOpts, heights)
	if err != nil {
		log.Fatal(err)
	}

	var labels []string
	var elCuts [][]sim.PatternPoint
	var series []report.Series
	for i := range heights {
		labels = append(labels, fmt.Sprintf("%.1f m", heights[i]))
		elCuts = append(elCuts, elPats[i].Pattern)
		series = append(series, report.Series{Label: labels[i], Elevation: elPats[i].Pattern, Azimuth: azPats[i].Pattern})
	}
	header, rows := report.ElevationGainTable(labels, elCuts)
	rep.AddTable("Gain at az=0 for Elevation 0-180", params, header, rows)

	png := filepath.Join(outdir, "8_jk_pattern.png")
	if err := report.SavePatternsPNG(png, series); err != nil {
		log.Fatal(err)
	}
	rep.AddPlot("Azimuth and Elevation Patterns", filepath.Base(png))

	// comparison against a plain dipole of the same element length at 10m
	dipole := model.NewDipole(lengthM, segments, cfg.RadiusM())
	cmpOpts := opts
	cmpOpts.HeightM = cmpHeight
	cmpAzOpts := azOpts
	cmpAzOpts.HeightM = cmpHeight

	jkRes, err := s.SimulatePattern(ctx, m, cmpOpts)
	if err != nil {
		log.Fatal(err)
	}
	jkAz, err := s.SimulateAzimuthPattern(ctx, m, cmpAzOpts)
	if err != nil {
		log.Fatal(err)
	}
	dipRes, err := s.SimulatePattern(ctx, dipole, cmpOpts)
	if err != nil {
		log.Fatal(err)
	}
	dipAz, err := s.SimulateAzimuthPattern(ctx, dipole, cmpAzOpts)
	if err != nil {
		log.Fatal(err)
	}
	color.Yellow("8JK fwd gain %.2f dBi vs dipole %.2f dBi at %gm",
		am.ForwardGain(jkAz), am.ForwardGain(dipAz), cmpHeight)

	cmpPng := filepath.Join(outdir, "8_jk_vs_dipole.png")
	err = report.SavePatternsPNG(cmpPng, []report.Series{
		{Label: "8JK", Elevation: am.ElevationCut(jkRes.Pattern), Azimuth: jkAz},
		{Label: "Dipole", Elevation: am.ElevationCut(dipRes.Pattern), Azimuth: dipAz, Dashed: true},
	})
	if err != nil {
		log.Fatal(err)
	}
	rep.AddPlot("8JK vs Dipole Comparison", filepath.Base(cmpPng))

	if _, err := rep.Save(outdir); err != nil {
		log.Fatal(err)
	}
	if showGUI {
		report.OpenViewer(png)
		report.OpenViewer(cmpPng)
	}
}
