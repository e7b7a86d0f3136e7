// 2-element Yagi on 14.1 MHz: resonant driven element with a 5% longer
// passive reflector 0.2 wavelength behind it. Sweeps reflector detune
// against boom spacing for forward gain and front-to-back.
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

	freqMHz      = 14.1
	baseDetune   = 0.05
	baseSpacing  = 0.2 // wavelengths
	segments     = 21
	elFixed      = 30.0
	heights      = []float64{5, 10, 15, 20}
	sweepHeight  = 10.0
	spacingFracs = []float64{0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40}
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
		outdir = filepath.Join(cfg.OutDir, "output/2_el_yagi")
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Fatal(err)
	}
	ground, _ := cfg.GroundModel()

	lambda := model.WavelengthM(freqMHz)
	m := model.NewTwoElementYagi(freqMHz, baseDetune, baseSpacing*lambda, segments, cfg.RadiusM())

	s := sim.NewWith(mininec.Exec{Path: cfg.SolverPath})
	s.FFDistanceM = cfg.FFDistanceM
	ctx := context.Background()
	rep := report.New("2_el_yagi")
	params := fmt.Sprintf("frequency = %g MHz; reflector detune = %g%%; spacing = %g lambda; ground = %s; segments = %d; radius = %g m",
		freqMHz, baseDetune*100, baseSpacing, ground, segments, cfg.RadiusM())

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

	// detune x spacing sweep at 10m height
	color.Cyan("Sweeping reflector detune 0-10%% against spacings %v lambda", spacingFracs)
	sweepHeader := []string{"Detune (%)"}
	for _, frac := range spacingFracs {
		sweepHeader = append(sweepHeader, fmt.Sprintf("%.2fλ", frac))
	}
	var fgRows, fbRows [][]string
	for detunePct := 0; detunePct <= 10; detunePct++ {
		detune := float64(detunePct) / 100
		fgRow := []string{fmt.Sprintf("%.2f", float64(detunePct))}
		fbRow := []string{fmt.Sprintf("%.2f", float64(detunePct))}
		for _, frac := range spacingFracs {
			m2 := model.NewTwoElementYagi(freqMHz, detune, frac*lambda, segments, cfg.RadiusM())
			swOpts := azOpts
			swOpts.HeightM = sweepHeight
			azPat, err := s.SimulateAzimuthPattern(ctx, m2, swOpts)
			if err != nil {
				log.Fatal(err)
			}
			fgRow = append(fgRow, fmt.Sprintf("%.2f", am.ForwardGain(azPat)))
			fbRow = append(fbRow, fmt.Sprintf("%.2f", am.FrontToBack(azPat)))
		}
		fgRows = append(fgRows, fgRow)
		fbRows = append(fbRows, fbRow)
	}
	cols := make([]int, len(spacingFracs))
	for i := range cols {
		cols[i] = i + 1
	}
	sweepParams := fmt.Sprintf("frequency = %g MHz; height = %g m; el = %g deg; ground = %s", freqMHz, sweepHeight, elFixed, ground)
	rep.AddTable("Forward Gain vs Detune (%) and Spacing", sweepParams, sweepHeader, report.BoldPeaks(fgRows, cols...))
	rep.AddTable("Front-to-Back Ratio vs Detune (%) and Spacing", sweepParams, sweepHeader, report.BoldPeaks(fbRows, cols...))

	png := filepath.Join(outdir, "2_el_yagi_pattern.png")
	if err := report.SavePatternsPNG(png, series); err != nil {
		log.Fatal(err)
	}
	rep.AddPlot(fmt.Sprintf("Azimuth Pattern (el=%g)", elFixed), filepath.Base(png))

	if _, err := rep.Save(outdir); err != nil {
		log.Fatal(err)
	}
	if showGUI {
		report.OpenViewer(png)
	}
}
