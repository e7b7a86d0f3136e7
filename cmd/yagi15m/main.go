// 2-element Yagi optimization for 15m (21 MHz) at half-wavelength
// height: sweeps boom length and reflector detune, reports the best
// forward gain and front-to-back per boom, and compares the winning
// geometries against a plain half-wave dipole.
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
	spacingFracs = []float64{0.05, 0.075, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40}
	plotFracs    = []float64{0.05, 0.075, 0.10, 0.15, 0.20}
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

type sweepCell struct {
	fwd, fb float64
}

func main() {
	cfg, err := config.Read(indir)
	if err != nil {
		log.Fatal(err)
	}
	if outdir == "" {
		outdir = filepath.Join(cfg.OutDir, "output/2_el_yagi_15m")
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
	rep := report.New("2_el_yagi_15m")
	params := fmt.Sprintf("frequency = %g MHz; height = %.2f m (~0.5λ); ground = %s; segments = %d; radius = %g m; elevation = %g deg",
		freqMHz, heightM, ground, segments, cfg.RadiusM(), elFixed)

	azOpts := sim.AzOptions{FreqMHz: freqMHz, HeightM: heightM, Ground: ground, ElDeg: elFixed, AzStepDeg: 5}

	evaluate := func(detune, spacingM float64) sweepCell {
		m := model.NewTwoElementYagi(freqMHz, detune, spacingM, segments, cfg.RadiusM())
		azPat, err := s.SimulateAzimuthPattern(ctx, m, azOpts)
		if err != nil {
			log.Fatal(err)
		}
		return sweepCell{fwd: am.ForwardGain(azPat), fb: am.FrontToBack(azPat)}
	}

	// boom sweep 2-10 ft, detune optimized per boom in 0.5% steps
	var boomRows [][]string
	for boomFt := 2.0; boomFt <= 10.0; boomFt++ {
		boomM := model.FeetToMeters(boomFt)
		bestGain, bestFB := sweepCell{fwd: -999}, sweepCell{fb: -999}
		var gainDetune, fbDetune float64
		for detune := 0.0; detune <= 0.10+1e-9; detune += 0.005 {
			cell := evaluate(detune, boomM)
			if cell.fwd > bestGain.fwd {
				bestGain, gainDetune = cell, detune
			}
			if cell.fb > bestFB.fb {
				bestFB, fbDetune = cell, detune
			}
		}
		boomRows = append(boomRows, []string{
			fmt.Sprintf("%.1f (%.3fλ)", boomFt, boomM/lambda),
			fmt.Sprintf("%.2f", bestGain.fwd), fmt.Sprintf("%.2f", gainDetune*100),
			fmt.Sprintf("%.2f", bestFB.fb), fmt.Sprintf("%.2f", fbDetune*100),
		})
		color.Green("boom %4.1fft: best gain %.2f dBi (detune %.1f%%), best F/B %.2f dB (detune %.1f%%)",
			boomFt, bestGain.fwd, gainDetune*100, bestFB.fb, fbDetune*100)
	}
	rep.AddTable("Best Gain and F/B vs Boom Length", params,
		[]string{"Boom (ft, λ)", "Max Gain (dBi)", "Detune for Max Gain (%)", "Max F/B (dB)", "Detune for Max F/B (%)"},
		boomRows)

	// detune x spacing matrices in 1% steps
	nDetunes := 11
	matrix := make([][]sweepCell, nDetunes)
	for i := 0; i < nDetunes; i++ {
		detune := float64(i) / 100
		matrix[i] = make([]sweepCell, len(spacingFracs))
		for j, frac := range spacingFracs {
			matrix[i][j] = evaluate(detune, frac*lambda)
		}
	}
	sweepHeader := []string{"Detune (%)", "Reflector Length (λ)"}
	for _, frac := range spacingFracs {
		sweepHeader = append(sweepHeader, fmt.Sprintf("%.2fλ (%.1f ft)", frac, model.MetersToFeet(frac*lambda)))
	}
	var fgRows, fbRows [][]string
	for i := 0; i < nDetunes; i++ {
		detune := float64(i) / 100
		head := []string{fmt.Sprintf("%.2f", detune*100), fmt.Sprintf("%.3f", 0.5*(1+detune))}
		fgRow := append([]string{}, head...)
		fbRow := append([]string{}, head...)
		for j := range spacingFracs {
			fgRow = append(fgRow, fmt.Sprintf("%.2f", matrix[i][j].fwd))
			fbRow = append(fbRow, fmt.Sprintf("%.2f", matrix[i][j].fb))
		}
		fgRows = append(fgRows, fgRow)
		fbRows = append(fbRows, fbRow)
	}
	cols := make([]int, len(spacingFracs))
	for j := range cols {
		cols[j] = j + 2
	}
	rep.AddTable("Forward Gain vs Detune (%) and Spacing", params, sweepHeader, report.BoldPeaks(fgRows, cols...))
	rep.AddTable("Front-to-Back Ratio vs Detune (%) and Spacing", params, sweepHeader, report.BoldPeaks(fbRows, cols...))

	// half-wave dipole reference
	dipole := model.NewDipole(model.ResonantDipoleLength(freqMHz), segments, cfg.RadiusM())
	dipAz, err := s.SimulateAzimuthPattern(ctx, dipole, azOpts)
	if err != nil {
		log.Fatal(err)
	}
	dipRes, err := s.SimulatePattern(ctx, dipole, sim.Options{
		FreqMHz: freqMHz, HeightM: heightM, Ground: ground, ElStepDeg: 5, AzStepDeg: 360,
	})
	if err != nil {
		log.Fatal(err)
	}
	dipFwd := am.ForwardGain(dipAz)
	rep.AddTable("Half-wave Dipole Reference", params,
		[]string{"Gain (dBi)", "F/B (dB)"},
		[][]string{{fmt.Sprintf("%.2f", dipFwd), fmt.Sprintf("%.2f", am.FrontToBack(dipAz))}})

	// polar comparison of the winning detune per close spacing, dipole dashed
	bestOf := func(better func(sweepCell) float64, frac float64) (detune float64) {
		j := -1
		for k, f := range spacingFracs {
			if f == frac {
				j = k
			}
		}
		best := -1e9
		for i := 0; i < nDetunes; i++ {
			if v := better(matrix[i][j]); v > best {
				best, detune = v, float64(i)/100
			}
		}
		return detune
	}
	makeSeries := func(better func(sweepCell) float64) []report.Series {
		var series []report.Series
		for _, frac := range plotFracs {
			detune := bestOf(better, frac)
			m := model.NewTwoElementYagi(freqMHz, detune, frac*lambda, segments, cfg.RadiusM())
			res, err := s.SimulatePattern(ctx, m, sim.Options{
				FreqMHz: freqMHz, HeightM: heightM, Ground: ground, ElStepDeg: 5, AzStepDeg: 360,
			})
			if err != nil {
				log.Fatal(err)
			}
			azPat, err := s.SimulateAzimuthPattern(ctx, m, azOpts)
			if err != nil {
				log.Fatal(err)
			}
			series = append(series, report.Series{
				Label:     fmt.Sprintf("%.3fλ (%.0f%%)", frac, detune*100),
				Elevation: res.Pattern,
				Azimuth:   azPat,
			})
		}
		series = append(series, report.Series{
			Label: "Dipole", Elevation: dipRes.Pattern, Azimuth: dipAz, Dashed: true,
		})
		return series
	}

	gainPng := filepath.Join(outdir, "spacing_subset_polar_gain.png")
	if err := report.SavePatternsPNG(gainPng, makeSeries(func(c sweepCell) float64 { return c.fwd })); err != nil {
		log.Fatal(err)
	}
	rep.AddPlot("Polar Patterns (Max Gain per Spacing)", filepath.Base(gainPng))

	fbPng := filepath.Join(outdir, "spacing_subset_polar_fb.png")
	if err := report.SavePatternsPNG(fbPng, makeSeries(func(c sweepCell) float64 { return c.fb })); err != nil {
		log.Fatal(err)
	}
	rep.AddPlot("Polar Patterns (Max F/B per Spacing)", filepath.Base(fbPng))

	// gain and F/B versus detune curves per spacing, dipole dashed
	var gainCurves, fbCurves []report.LineSeries
	for j, frac := range spacingFracs {
		gc := report.LineSeries{Label: fmt.Sprintf("%.3fλ", frac)}
		fc := report.LineSeries{Label: fmt.Sprintf("%.3fλ", frac)}
		for i := 0; i < nDetunes; i++ {
			x := float64(i)
			gc.Points = append(gc.Points, report.XY{X: x, Y: matrix[i][j].fwd})
			fc.Points = append(fc.Points, report.XY{X: x, Y: matrix[i][j].fb})
		}
		gainCurves = append(gainCurves, gc)
		fbCurves = append(fbCurves, fc)
	}
	gainCurves = append(gainCurves, report.LineSeries{
		Label: "Dipole", Dashed: true,
		Points: []report.XY{{X: 0, Y: dipFwd}, {X: 10, Y: dipFwd}},
	})
	dipFB := am.FrontToBack(dipAz)
	fbCurves = append(fbCurves, report.LineSeries{
		Label: "Dipole", Dashed: true,
		Points: []report.XY{{X: 0, Y: dipFB}, {X: 10, Y: dipFB}},
	})

	gainChart := filepath.Join(outdir, "gain_vs_detune.png")
	if err := report.SaveLineChartPNG(gainChart, "Forward Gain vs Detune (15m Yagi)",
		"Reflector Detune (%)", "Forward Gain (dBi)", gainCurves); err != nil {
		log.Fatal(err)
	}
	rep.AddPlot("Forward Gain vs Detune for Each Spacing Fraction", filepath.Base(gainChart))

	fbChart := filepath.Join(outdir, "fb_vs_detune.png")
	if err := report.SaveLineChartPNG(fbChart, "F/B Ratio vs Detune (15m Yagi)",
		"Reflector Detune (%)", "Front-to-Back Ratio (dB)", fbCurves); err != nil {
		log.Fatal(err)
	}
	rep.AddPlot("Front-to-Back Ratio vs Detune for Each Spacing Fraction", filepath.Base(fbChart))

	if _, err := rep.Save(outdir); err != nil {
		log.Fatal(err)
	}
	if showGUI {
		for _, png := range []string{gainPng, fbPng, gainChart, fbChart} {
			report.OpenViewer(png)
		}
	}
}
