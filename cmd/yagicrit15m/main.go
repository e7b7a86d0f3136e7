// Tuning criticality of a 2-element 15m Yagi: for each boom spacing the
// reflector is detuned for peak front-to-back at 21 MHz, then the
// pattern is re-simulated at +-25, +-50 and +-100 kHz to show how fast
// the null degrades off frequency.
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

	freqMHz      = 21.0
	segments     = 21
	elFixed      = 30.0
	spacingFracs = []float64{0.05, 0.075, 0.10, 0.15}
	offsetsKHz   = []float64{-100, -50, -25, 0, 25, 50, 100}
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
		outdir = filepath.Join(cfg.OutDir, "output/criticality_15m")
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Fatal(err)
	}
	ground, _ := cfg.GroundModel()

	lambda := model.WavelengthM(freqMHz)
	heightM := 0.5 * lambda

	s := sim.NewWith(mininec.Exec{Path: cfg.SolverPath})
	s.FFDistanceM = cfg.FFDistanceM
	ctx := context.Background()
	rep := report.New("2_el_yagi_15m_tuning_criticality")

	bestFBDetune := func(spacingM float64) float64 {
		bestFB, bestDet := -1e9, 0.0
		for detune := 0.0; detune <= 0.10+1e-9; detune += 0.005 {
			m := model.NewTwoElementYagi(freqMHz, detune, spacingM, segments, cfg.RadiusM())
			azPat, err := s.SimulateAzimuthPattern(ctx, m, sim.AzOptions{
				FreqMHz: freqMHz, HeightM: heightM, Ground: ground, ElDeg: elFixed, AzStepDeg: 5,
			})
			if err != nil {
				log.Fatal(err)
			}
			if fb := am.FrontToBack(azPat); fb > bestFB {
				bestFB, bestDet = fb, detune
			}
		}
		return bestDet
	}

	var pngs []string
	var fbRows [][]string
	for _, frac := range spacingFracs {
		spacingM := frac * lambda
		detune := bestFBDetune(spacingM)
		color.Cyan("spacing %.3fλ: reflector detune %.1f%% for peak F/B", frac, detune*100)

		m := model.NewTwoElementYagi(freqMHz, detune, spacingM, segments, cfg.RadiusM())
		var series []report.Series
		fbRow := []string{fmt.Sprintf("%.3f", frac), fmt.Sprintf("%.1f", detune*100)}
		for _, off := range offsetsKHz {
			f := freqMHz + off/1e3
			res, err := s.SimulatePattern(ctx, m, sim.Options{
				FreqMHz: f, HeightM: heightM, Ground: ground, ElStepDeg: 5, AzStepDeg: 360,
			})
			if err != nil {
				log.Fatal(err)
			}
			azPat, err := s.SimulateAzimuthPattern(ctx, m, sim.AzOptions{
				FreqMHz: f, HeightM: heightM, Ground: ground, ElDeg: elFixed, AzStepDeg: 5,
			})
			if err != nil {
				log.Fatal(err)
			}
			series = append(series, report.Series{
				Label:     fmt.Sprintf("%g kHz", off),
				Elevation: res.Pattern,
				Azimuth:   azPat,
				Dashed:    off == 0,
			})
			fbRow = append(fbRow, fmt.Sprintf("%.2f", am.FrontToBack(azPat)))
		}
		fbRows = append(fbRows, fbRow)

		png := filepath.Join(outdir, fmt.Sprintf("criticality_%dpl.png", int(frac*1000)))
		if err := report.SavePatternsPNG(png, series); err != nil {
			log.Fatal(err)
		}
		rep.AddPlot(fmt.Sprintf("Criticality Polar Patterns (%.3fλ)", frac), filepath.Base(png))
		pngs = append(pngs, png)
	}

	header := []string{"Spacing (λ)", "Detune (%)"}
	for _, off := range offsetsKHz {
		header = append(header, fmt.Sprintf("%g kHz", off))
	}
	rep.AddTable("F/B over Frequency Offset",
		fmt.Sprintf("frequency = %g MHz; height = %.2f m (~0.5λ); ground = %s; segments = %d; radius = %g m; el = %g deg",
			freqMHz, heightM, ground, segments, cfg.RadiusM(), elFixed),
		header, fbRows)

	if _, err := rep.Save(outdir); err != nil {
		log.Fatal(err)
	}
	if showGUI {
		for _, png := range pngs {
			report.OpenViewer(png)
		}
	}
}
