// Pattern and feedpoint impedance of center-fed dipoles of 66', 88', 96'
// and 102' length at 10m height, evaluated on 3.5 and 7.1 MHz.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

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

	lengthsFt = []float64{66, 88, 96, 102}
	freqsMHz  = []float64{3.5, 7.1}
	heightM   = 10.0
	segments  = 21
	elFixed   = 30.0
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
		outdir = filepath.Join(cfg.OutDir, "output/40_80_multiband")
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Fatal(err)
	}
	ground, _ := cfg.GroundModel()

	s := sim.NewWith(mininec.Exec{Path: cfg.SolverPath})
	s.FFDistanceM = cfg.FFDistanceM
	ctx := context.Background()
	rep := report.New("40_80_multiband")

	var pngs []string
	for _, freq := range freqsMHz {
		color.Cyan("Band %.1f MHz", freq)
		var impRows [][]string
		var labels []string
		var elPats, azPats [][]sim.PatternPoint
		var series []report.Series
		for _, lft := range lengthsFt {
			lm := model.FeetToMeters(lft)
			m := model.NewDipole(lm, segments, cfg.RadiusM())

			res, err := s.SimulatePattern(ctx, m, sim.Options{
				FreqMHz: freq, HeightM: heightM, Ground: ground, ElStepDeg: 5, AzStepDeg: 360,
			})
			if err != nil {
				log.Fatal(err)
			}
			if res.Impedance == nil {
				log.Fatalf("no impedance for %g' dipole at %g MHz", lft, freq)
			}
			azPat, err := s.SimulateAzimuthPattern(ctx, m, sim.AzOptions{
				FreqMHz: freq, HeightM: heightM, Ground: ground, ElDeg: elFixed, AzStepDeg: 5,
			})
			if err != nil {
				log.Fatal(err)
			}

			label := fmt.Sprintf("%g'", lft)
			cut := res.Pattern
			labels = append(labels, label)
			elPats = append(elPats, cut)
			azPats = append(azPats, azPat)
			series = append(series, report.Series{Label: label, Elevation: cut, Azimuth: azPat})
			impRows = append(impRows, []string{
				label, fmt.Sprintf("%.2f", lm),
				fmt.Sprintf("%.2f", res.Impedance.R), fmt.Sprintf("%.2f", res.Impedance.X),
			})
			color.Green("  %4g' (%.2f m): R=%8.2f X=%8.2f", lft, lm, res.Impedance.R, res.Impedance.X)
		}

		params := fmt.Sprintf("frequency = %g MHz; height = %g m; ground = %s; segments = %d; radius = %g m",
			freq, heightM, ground, segments, cfg.RadiusM())
		rep.AddTable(fmt.Sprintf("Feedpoint Impedance at 10m (f=%g MHz)", freq), params,
			[]string{"Length (ft)", "Length (m)", "R (ohm)", "X (ohm)"}, impRows)

		header, rows := report.ElevationGainTable(labels, elPats)
		rep.AddTable(fmt.Sprintf("Gain at az=0 for Elevation 0-180 (f=%g MHz)", freq),
			params+"; azimuth = 0 deg", header, rows)

		azHeader, azRows := report.AzimuthGainTable(labels, azPats)
		rep.AddTable(fmt.Sprintf("Azimuth Gain at el=%g (f=%g MHz)", elFixed, freq),
			params+fmt.Sprintf("; elevation = %g deg", elFixed), azHeader, azRows)

		png := filepath.Join(outdir, fmt.Sprintf("polar_patterns_%.1fMHz.png", freq))
		if err := report.SavePatternsPNG(png, series); err != nil {
			log.Fatal(err)
		}
		rep.AddPlot(fmt.Sprintf("Polar Patterns (f=%g MHz)", freq), filepath.Base(png))
		pngs = append(pngs, png)
	}

	if _, err := rep.Save(outdir); err != nil {
		log.Fatal(err)
	}
	if showGUI {
		for _, png := range pngs {
			report.OpenViewer(png)
		}
	}
}
