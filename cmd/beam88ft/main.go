// 2-element beam with an 88ft driven wire and a passive reflector cut
// for 7.1 MHz, detuned by 3-6%, spaced 20ft behind the driven element.
// Impedance, forward gain and front-to-back are tabulated per case, and
// patterns are plotted at 7.1 and 3.5 MHz.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
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

	drivenFt    = 88.0
	spacingFt   = 20.0
	reflResFreq = 7.1
	heightM     = 20.0
	freqsMHz    = []float64{7.1, 3.5}
	segments    = 21
	elFixed     = 30.0
)

type beamCase struct {
	label  string
	detune float64 // negative means no reflector
}

var cases = []beamCase{
	{"No reflector", -1},
	{"3%", 0.03},
	{"4%", 0.04},
	{"5%", 0.05},
	{"5.5%", 0.055},
	{"6%", 0.06},
}

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

func buildCase(c beamCase, radiusM float64) *model.Model {
	drivenM := model.FeetToMeters(drivenFt)
	if c.detune < 0 {
		return model.NewDipole(drivenM, segments, radiusM)
	}
	reflM := model.ResonantDipoleLength(reflResFreq) * (1 + c.detune)
	return model.NewTwoElementBeam(drivenM, reflM, model.FeetToMeters(spacingFt), segments, radiusM)
}

// series compensation for the feedpoint reactance: a capacitor cancels
// inductive X, an inductor cancels capacitive X
func matchComponent(freqMHz, x float64) string {
	w := 2 * math.Pi * freqMHz * 1e6
	if x > 0 {
		return fmt.Sprintf("C=%.1f pF", 1/(w*x)*1e12)
	}
	return fmt.Sprintf("L=%.1f nH", math.Abs(x)/w*1e9)
}

func main() {
	cfg, err := config.Read(indir)
	if err != nil {
		log.Fatal(err)
	}
	if outdir == "" {
		outdir = filepath.Join(cfg.OutDir, "output/2_el_beam_88ft")
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Fatal(err)
	}
	ground, _ := cfg.GroundModel()

	s := sim.NewWith(mininec.Exec{Path: cfg.SolverPath})
	s.FFDistanceM = cfg.FFDistanceM
	ctx := context.Background()
	rep := report.New("2_el_beam_88ft")
	params := fmt.Sprintf("driven = %g'; spacing = %g'; height = %g m; segments = %d; radius = %g m; ground = %s",
		drivenFt, spacingFt, heightM, segments, cfg.RadiusM(), ground)

	impRows := map[float64][][]string{}
	for _, c := range cases {
		m := buildCase(c, cfg.RadiusM())
		for _, freq := range freqsMHz {
			res, err := s.SimulatePattern(ctx, m, sim.Options{
				FreqMHz: freq, HeightM: heightM, Ground: ground, ElStepDeg: 45, AzStepDeg: 360,
			})
			if err != nil {
				log.Fatal(err)
			}
			if res.Impedance == nil {
				log.Fatalf("no impedance for case %q at %g MHz", c.label, freq)
			}
			impRows[freq] = append(impRows[freq], []string{
				c.label,
				fmt.Sprintf("%.2f", res.Impedance.R),
				fmt.Sprintf("%.2f", res.Impedance.X),
				matchComponent(freq, res.Impedance.X),
			})
		}
	}
	for _, freq := range freqsMHz {
		rep.AddTable(fmt.Sprintf("Feedpoint Impedance at %g MHz vs Case", freq), params,
			[]string{"Case", "R (ohm)", "X (ohm)", "Match"}, impRows[freq])
	}

	var fgfbRows [][]string
	for _, c := range cases {
		m := buildCase(c, cfg.RadiusM())
		azPat, err := s.SimulateAzimuthPattern(ctx, m, sim.AzOptions{
			FreqMHz: reflResFreq, HeightM: heightM, Ground: ground, ElDeg: elFixed, AzStepDeg: 5,
		})
		if err != nil {
			log.Fatal(err)
		}
		fwd := am.ForwardGain(azPat)
		fb := am.FrontToBack(azPat)
		fgfbRows = append(fgfbRows, []string{c.label, fmt.Sprintf("%.2f", fwd), fmt.Sprintf("%.2f", fb)})
		color.Green("%-14s fwd=%6.2f dBi  F/B=%6.2f dB", c.label, fwd, fb)
	}
	rep.AddTable(fmt.Sprintf("Forward Gain and Front-to-Back at %g MHz", reflResFreq),
		params+fmt.Sprintf("; el = %g deg", elFixed),
		[]string{"Case", "Fwd Gain (dB)", "F/B (dB)"}, report.BoldPeaks(fgfbRows, 1, 2))

	var pngs []string
	for _, freq := range freqsMHz {
		var series []report.Series
		for _, c := range cases {
			m := buildCase(c, cfg.RadiusM())
			res, err := s.SimulatePattern(ctx, m, sim.Options{
				FreqMHz: freq, HeightM: heightM, Ground: ground, ElStepDeg: 1, AzStepDeg: 360,
			})
			if err != nil {
				log.Fatal(err)
			}
			azPat, err := s.SimulateAzimuthPattern(ctx, m, sim.AzOptions{
				FreqMHz: freq, HeightM: heightM, Ground: ground, ElDeg: elFixed, AzStepDeg: 5,
			})
			if err != nil {
				log.Fatal(err)
			}
			series = append(series, report.Series{
				Label:     c.label,
				Elevation: res.Pattern,
				Azimuth:   azPat,
				Dashed:    c.detune < 0,
			})
		}
		png := filepath.Join(outdir, fmt.Sprintf("polar_patterns_%.1fMHz.png", freq))
		if err := report.SavePatternsPNG(png, series); err != nil {
			log.Fatal(err)
		}
		rep.AddPlot(fmt.Sprintf("Polar Patterns at %g MHz", freq), filepath.Base(png))
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
