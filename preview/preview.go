// Package preview renders a generated point set as a self-contained HTML
// scatter chart.
package preview

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"
)

// Options controls the rendered chart. Width and Height are the sampling
// rectangle; zero CanvasPx and SymbolSize fall back to sensible defaults.
type Options struct {
	Title  string
	Width  float64
	Height float64

	CanvasPx   int
	SymbolSize int
	Theme      string
}

// Render writes an HTML scatter preview of points to w. Points render inside a
// square canvas with axes fixed to the sampling rectangle, so the spatial
// distribution is not distorted by autoscaling.
func Render(w io.Writer, points []orb.Point, o Options) error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("preview: rectangle must be positive, got %vx%v", o.Width, o.Height)
	}
	canvas := o.CanvasPx
	if canvas == 0 {
		canvas = 900
	}
	symbol := o.SymbolSize
	if symbol == 0 {
		symbol = 3
	}
	title := o.Title
	if title == "" {
		title = "Point field"
	}

	data := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.ScatterData{Value: []interface{}{p[0], p[1]}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     o.Theme,
			Width:     fmt.Sprintf("%dpx", canvas),
			Height:    fmt.Sprintf("%dpx", canvas),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: spacingSubtitle(points),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: o.Width, Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: o.Height, Name: "y"}),
	)

	scatter.AddSeries("points", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbol}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("rendering preview chart: %w", err)
	}
	return nil
}

// statSampleCap bounds the quadratic nearest-neighbor scan used for the
// subtitle; beyond it only a prefix of the points is summarized.
const statSampleCap = 2000

// spacingSubtitle summarizes nearest-neighbor spacing for the chart subtitle.
func spacingSubtitle(points []orb.Point) string {
	if len(points) < 2 {
		return fmt.Sprintf("points=%d", len(points))
	}

	sample := points
	if len(sample) > statSampleCap {
		sample = sample[:statSampleCap]
	}

	nn := make([]float64, len(sample))
	minNN := math.Inf(1)
	for i := range sample {
		best := math.Inf(1)
		for j := range sample {
			if i == j {
				continue
			}
			dx := sample[i][0] - sample[j][0]
			dy := sample[i][1] - sample[j][1]
			if d := dx*dx + dy*dy; d < best {
				best = d
			}
		}
		nn[i] = math.Sqrt(best)
		if nn[i] < minNN {
			minNN = nn[i]
		}
	}

	return fmt.Sprintf("points=%d nn_mean=%.3f nn_min=%.3f", len(points), stat.Mean(nn, nil), minNN)
}
