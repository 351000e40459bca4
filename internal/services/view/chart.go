package view

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// maxChartTicks caps the number of X axis labels
const maxChartTicks = 10

// ChartOptions sizes the rendered chart
type ChartOptions struct {
	Width  int
	Height int
}

// DefaultChartOptions returns the standard chart size
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 900, Height: 400}
}

// RenderPriceChart renders the close price series as a filled PNG line chart.
// Points without a close value are skipped. Returns raw PNG bytes.
func RenderPriceChart(title string, series ChartSeries, opts ChartOptions) ([]byte, error) {
	var xValues, yValues []float64
	var labels []string
	for i, v := range series.Values {
		if v == nil {
			continue
		}
		xValues = append(xValues, float64(len(xValues)))
		yValues = append(yValues, *v)
		labels = append(labels, series.Labels[i])
	}

	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 price points, got %d", len(xValues))
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultChartOptions()
	}

	blue := drawing.ColorFromHex("4f8cff")
	closeSeries := chart.ContinuousSeries{
		Name: "Close Price",
		Style: chart.Style{
			StrokeColor: blue,
			StrokeWidth: 2,
			FillColor:   blue.WithAlpha(51),
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: dayTicks(labels),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{closeSeries},
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// dayTicks spreads at most maxChartTicks labels evenly across the series
func dayTicks(labels []string) []chart.Tick {
	step := 1
	if len(labels) > maxChartTicks {
		step = (len(labels) + maxChartTicks - 1) / maxChartTicks
	}

	var ticks []chart.Tick
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: DayLabel(labels[i])})
	}
	return ticks
}

// DayLabel renders a YYYY-MM-DD label as "Jan 2". Unparseable labels are returned unchanged.
func DayLabel(label string) string {
	t, err := time.Parse("2006-01-02", label)
	if err != nil {
		return label
	}
	return t.Format("Jan 2")
}
