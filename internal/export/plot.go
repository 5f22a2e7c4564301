package export

import (
	"fmt"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"accelviz/internal/sample"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// SavePlots renders the recorded series as PNG images under dir: one
// combined image with every channel overlaid, plus one image per channel.
// The value axis is pinned to (yMin, yMax) — the window's initial
// configured range, not the auto-grown one — so exports from different
// sessions stay comparable. Returns the written file paths.
func SavePlots(dir, prefix string, start time.Time, series []Series, channels []sample.ChannelSpec, yMin, yMax float64) ([]string, error) {
	if len(series) != len(channels) {
		return nil, fmt.Errorf("[export] %d series for %d channels", len(series), len(channels))
	}
	base := fmt.Sprintf("%s-%s", prefix, start.Local().Format(TimestampLayout))

	var written []string
	combined := filepath.Join(dir, base+".png")
	if err := savePlot(combined, series, channels, yMin, yMax); err != nil {
		return written, err
	}
	written = append(written, combined)

	for ch := range series {
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.png", base, channels[ch].Name))
		if err := savePlot(path, series[ch:ch+1], channels[ch:ch+1], yMin, yMax); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func savePlot(path string, series []Series, channels []sample.ChannelSpec, yMin, yMax float64) error {
	p := plot.New()
	p.Title.Text = "Recorded sensor data"
	p.X.Label.Text = "Running time (s)"
	p.Y.Label.Text = fmt.Sprintf("Value (%s)", channels[0].Unit)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for ch, s := range series {
		line, err := plotter.NewLine(xys(s))
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		line.Color = channels[ch].Color
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s axis", channels[ch].Name), line)
	}

	// pin after Add: adding plotters expands the axis to the data range
	p.Y.Min, p.Y.Max = yMin, yMax

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func xys(s Series) plotter.XYs {
	pts := make(plotter.XYs, len(s))
	for i, pt := range s {
		pts[i].X = pt.Elapsed
		pts[i].Y = pt.Value
	}
	return pts
}
