package report

import (
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/wiless/antennamodel/sim"
)

// RadialScale maps gain onto the unit disc with the ARRL log-periodic
// rule r = 0.89^((max-g)/2): every 2 dB below the pattern maximum shrinks
// the radius by the same factor.
func RadialScale(gainDbi, maxDbi float64) float64 {
	return math.Pow(0.89, (maxDbi-gainDbi)/2)
}

// Series is one labelled trace on a polar pattern figure. Dashed marks
// reference traces, like the plain dipole an experiment compares against.
type Series struct {
	Label     string
	Elevation []sim.PatternPoint
	Azimuth   []sim.PatternPoint
	Dashed    bool
}

var gridColor = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff},
	color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff},
	color.RGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0xff},
	color.RGBA{R: 0x8a, G: 0x2b, B: 0xe2, A: 0xff},
	color.RGBA{R: 0x8b, G: 0x45, B: 0x13, A: 0xff},
	color.RGBA{A: 0xff},
}

func patternMax(series []Series) float64 {
	max := math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Elevation {
			if p.GainDbi > max {
				max = p.GainDbi
			}
		}
		for _, p := range s.Azimuth {
			if p.GainDbi > max {
				max = p.GainDbi
			}
		}
	}
	return max
}

func polarXYs(pts []sim.PatternPoint, angleDeg func(sim.PatternPoint) float64, maxDbi float64) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		r := RadialScale(p.GainDbi, maxDbi)
		a := angleDeg(p) * math.Pi / 180
		xys[i].X = r * math.Cos(a)
		xys[i].Y = r * math.Sin(a)
	}
	return xys
}

func arcXYs(r, fromDeg, toDeg float64) plotter.XYs {
	const n = 90
	xys := make(plotter.XYs, n+1)
	for i := 0; i <= n; i++ {
		a := (fromDeg + (toDeg-fromDeg)*float64(i)/n) * math.Pi / 180
		xys[i].X = r * math.Cos(a)
		xys[i].Y = r * math.Sin(a)
	}
	return xys
}

// newPolarPlot builds an axis-less square plot with dB-down rings and
// 30-degree spokes. half restricts the disc to the upper half plane for
// elevation cuts.
func newPolarPlot(title string, half bool) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = -1.1, 1.1
	if half {
		p.Y.Min, p.Y.Max = -0.1, 1.1
	} else {
		p.Y.Min, p.Y.Max = -1.1, 1.1
	}

	from, to := 0.0, 360.0
	if half {
		to = 180.0
	}
	for _, down := range []float64{0, 3, 6, 10, 20} {
		ring, err := plotter.NewLine(arcXYs(RadialScale(-down, 0), from, to))
		if err != nil {
			return nil, err
		}
		ring.Color = gridColor
		ring.Width = vg.Points(0.5)
		p.Add(ring)
	}
	for deg := from; deg < to; deg += 30 {
		a := deg * math.Pi / 180
		spoke, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: math.Cos(a), Y: math.Sin(a)}})
		if err != nil {
			return nil, err
		}
		spoke.Color = gridColor
		spoke.Width = vg.Points(0.5)
		p.Add(spoke)
	}
	return p, nil
}

func addTrace(p *plot.Plot, xys plotter.XYs, s Series, i int) error {
	if len(xys) == 0 {
		return nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = palette[i%len(palette)]
	line.Width = vg.Points(1.5)
	if s.Dashed {
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	}
	p.Add(line)
	if s.Label != "" {
		p.Legend.Add(s.Label, line)
		p.Legend.Top = true
	}
	return nil
}

// SavePatternPNG renders one unlabelled series; see SavePatternsPNG.
func SavePatternPNG(file string, elevation, azimuth []sim.PatternPoint) error {
	return SavePatternsPNG(file, []Series{{Elevation: elevation, Azimuth: azimuth}})
}

// SavePatternsPNG renders an elevation half-disc and, when any series has
// azimuth samples, an azimuth full-disc beside it. All traces share one
// radial scale so the cuts are comparable across series.
func SavePatternsPNG(file string, series []Series) error {
	maxDbi := patternMax(series)

	hasAz := false
	for _, s := range series {
		if len(s.Azimuth) > 0 {
			hasAz = true
		}
	}

	elPlot, err := newPolarPlot("Elevation (az=0)", true)
	if err != nil {
		return err
	}
	plots := []*plot.Plot{elPlot}
	var azPlot *plot.Plot
	if hasAz {
		azPlot, err = newPolarPlot("Azimuth", false)
		if err != nil {
			return err
		}
		plots = append(plots, azPlot)
	}

	for i, s := range series {
		elXYs := polarXYs(s.Elevation, func(p sim.PatternPoint) float64 { return p.ElDeg }, maxDbi)
		if err := addTrace(elPlot, elXYs, s, i); err != nil {
			return err
		}
		if azPlot != nil {
			azXYs := polarXYs(s.Azimuth, func(p sim.PatternPoint) float64 { return p.AzDeg }, maxDbi)
			if err := addTrace(azPlot, azXYs, s, i); err != nil {
				return err
			}
		}
	}

	const panel = 4 * vg.Inch
	img := vgimg.New(panel*vg.Length(len(plots)), panel)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: len(plots), PadX: vg.Millimeter, PadY: vg.Millimeter}
	row := [][]*plot.Plot{plots}
	canvases := plot.Align(row, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	w, err := os.Create(file)
	if err != nil {
		return err
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return nil
}
