// Package render draws metric time-series charts with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// Chart is a line chart on a time axis
type Chart struct {
	p          *plot.Plot
	yMin, yMax float64
	hasData    bool
}

// New creates an empty chart with a time-formatted X axis and a dashed grid
func New(title, xLabel, yLabel string) *Chart {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02\n15:04"}

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(grid)

	p.Legend.Top = true

	return &Chart{p: p, yMin: math.Inf(1), yMax: math.Inf(-1)}
}

func seriesXYs(s *types.Series) plotter.XYs {
	xys := make(plotter.XYs, len(s.Samples))
	for i, sm := range s.Samples {
		xys[i].X = float64(sm.Timestamp.Unix())
		xys[i].Y = sm.Value
	}
	return xys
}

func (c *Chart) observe(s *types.Series) {
	for _, sm := range s.Samples {
		if sm.Value < c.yMin {
			c.yMin = sm.Value
		}
		if sm.Value > c.yMax {
			c.yMax = sm.Value
		}
	}
	c.hasData = c.hasData || len(s.Samples) > 0
}

// AddSeries draws a series as a line. An empty name stays out of the legend.
func (c *Chart) AddSeries(name string, s *types.Series, col color.Color) error {
	if len(s.Samples) == 0 {
		return nil
	}
	line, err := plotter.NewLine(seriesXYs(s))
	if err != nil {
		return fmt.Errorf("building line %q: %w", name, err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	if col != nil {
		line.LineStyle.Color = col
	}
	c.p.Add(line)
	if name != "" {
		c.p.Legend.Add(name, line)
	}
	c.observe(s)
	return nil
}

// AddBand shades the area between lower and upper, for series that carry
// their own confidence columns. Both inputs must share a grid.
func (c *Chart) AddBand(name string, lower, upper *types.Series, col color.Color) error {
	n := len(lower.Samples)
	if n == 0 || len(upper.Samples) != n {
		return nil
	}

	ring := make(plotter.XYs, 0, 2*n)
	for _, sm := range upper.Samples {
		ring = append(ring, plotter.XY{X: float64(sm.Timestamp.Unix()), Y: sm.Value})
	}
	for i := n - 1; i >= 0; i-- {
		sm := lower.Samples[i]
		ring = append(ring, plotter.XY{X: float64(sm.Timestamp.Unix()), Y: sm.Value})
	}

	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return fmt.Errorf("building band %q: %w", name, err)
	}
	poly.Color = withAlpha(col, 0x33)
	poly.LineStyle.Color = color.Transparent
	c.p.Add(poly)
	if name != "" {
		c.p.Legend.Add(name, poly)
	}
	c.observe(lower)
	c.observe(upper)
	return nil
}

// AddVerticalRule draws a dashed vertical line at t, typically the first
// predicted timestamp. Call after all series are added so the Y extent is
// known.
func (c *Chart) AddVerticalRule(t time.Time) error {
	if !c.hasData {
		return nil
	}
	lo, hi := c.yMin, c.yMax
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	x := float64(t.Unix())
	rule, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
	if err != nil {
		return err
	}
	rule.LineStyle.Width = vg.Points(1)
	rule.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	rule.LineStyle.Color = color.Gray{Y: 0x60}
	c.p.Add(rule)
	return nil
}

func withAlpha(col color.Color, alpha uint8) color.Color {
	if col == nil {
		return color.NRGBA{A: alpha}
	}
	r, g, b, _ := col.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
