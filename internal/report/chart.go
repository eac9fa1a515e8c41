package report

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	barWidth           = 20
	defaultChartWidth  = 10
	defaultChartHeight = 6
)

// renderChart draws table as a bar chart and saves it to path. The image
// format follows the path extension. An empty table still yields an image
// with title and axes.
func renderChart(spec *ChartSpec, table *Table, path string) error {
	rows := table.Head(spec.Limit)
	// Horizontal bars are drawn bottom-up; reverse so the first row is on top.
	if spec.Horizontal {
		rows = slices.Clone(rows)
		slices.Reverse(rows)
	}

	p := plot.New()
	p.Title.Text = spec.Title

	if len(rows) > 0 {
		values := make(plotter.Values, len(rows))
		labels := make([]string, len(rows))
		for i, r := range rows {
			values[i] = spec.Value(r)
			labels[i] = spec.Label(r)
		}

		bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRender, spec.Title, err)
		}
		bars.Color = plotutil.Color(0)
		bars.LineStyle.Width = vg.Length(0)
		bars.Horizontal = spec.Horizontal
		p.Add(bars)

		if spec.Horizontal {
			p.NominalY(labels...)
			p.X.Label.Text = spec.ValueAxis
		} else {
			p.NominalX(labels...)
			p.Y.Label.Text = spec.ValueAxis
			p.X.Tick.Label.Rotation = math.Pi / 4
		}
	}

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = defaultChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrRender, path, err)
	}
	return nil
}
