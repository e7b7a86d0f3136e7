package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// XY is one cartesian chart sample.
type XY struct {
	X, Y float64
}

// LineSeries is one labelled curve on a cartesian chart.
type LineSeries struct {
	Label  string
	Points []XY
	Dashed bool
}

// SaveLineChartPNG renders labelled curves with a grid, for sweep results
// like gain versus detune.
func SaveLineChartPNG(file, title, xlabel, ylabel string, series []LineSeries) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	for i, s := range series {
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X, xys[j].Y = pt.X, pt.Y
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
		}
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}
