// Package report writes experiment results as markdown reports with
// polar pattern plots, plus Matlab exports of the raw samples.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"

	"github.com/wiless/antennamodel/sim"
)

// Report accumulates markdown sections and is written out once with Save.
type Report struct {
	Title string
	body  strings.Builder
}

func New(title string) *Report {
	return &Report{Title: title}
}

func (r *Report) AddSection(heading string) {
	fmt.Fprintf(&r.body, "## %s\n\n", heading)
}

func (r *Report) AddParagraph(text string) {
	fmt.Fprintf(&r.body, "%s\n\n", text)
}

// AddTable emits a pipe table under its own heading. The params line
// records the simulation setup the table was produced with.
func (r *Report) AddTable(heading, params string, header []string, rows [][]string) {
	r.AddSection(heading)
	if params != "" {
		r.AddParagraph(params)
	}
	fmt.Fprintf(&r.body, "| %s |\n", strings.Join(header, " | "))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(&r.body, "| %s |\n", strings.Join(sep, " | "))
	for _, row := range rows {
		fmt.Fprintf(&r.body, "| %s |\n", strings.Join(row, " | "))
	}
	r.body.WriteString("\n")
}

// AddPlot embeds an image by its path relative to the report file.
func (r *Report) AddPlot(caption, pngFile string) {
	fmt.Fprintf(&r.body, "![%s](%s)\n\n", caption, pngFile)
}

// Save writes the report as <dir>/report.md and returns its path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "report.md")
	content := fmt.Sprintf("# %s\n\n%s", r.Title, r.body.String())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	log.WithField("file", path).Info("report written")
	return path, nil
}

// BoldPeaks wraps the largest numeric value of each listed column in
// markdown bold, so the best row of a comparison table stands out.
// Non-numeric cells are skipped.
func BoldPeaks(rows [][]string, cols ...int) [][]string {
	for _, c := range cols {
		best := -1
		bestVal := 0.0
		for i, row := range rows {
			if c >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				continue
			}
			if best < 0 || v > bestVal {
				best, bestVal = i, v
			}
		}
		if best >= 0 {
			rows[best][c] = "**" + rows[best][c] + "**"
		}
	}
	return rows
}

// ExportMatlab dumps a pattern as three vectors (el, az, gain) in a .m
// file next to the report, for offline plotting.
func ExportMatlab(dir, name string, pts []sim.PatternPoint) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	matlab := vlib.NewMatlab(filepath.Join(dir, name))
	matlab.Silent = true
	var el, az, gain vlib.VectorF
	for _, p := range pts {
		el.AppendAtEnd(p.ElDeg)
		az.AppendAtEnd(p.AzDeg)
		gain.AppendAtEnd(p.GainDbi)
	}
	matlab.Export("el", el)
	matlab.Export("az", az)
	matlab.Export("gain", gain)
	matlab.Close()
	return nil
}
