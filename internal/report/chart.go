package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	defaultWidth  = 800
	defaultHeight = 480
)

// ChartRenderer draws PNG images with go-chart and hands them to a Sink.
type ChartRenderer struct {
	sink   Sink
	width  int
	height int
}

func NewChartRenderer(sink Sink) *ChartRenderer {
	return &ChartRenderer{sink: sink, width: defaultWidth, height: defaultHeight}
}

func (r *ChartRenderer) Render(ctx context.Context, c Chart) (string, error) {
	if c.Empty() {
		return "", nil
	}
	if len(c.Labels) != len(c.Values) {
		return "", fmt.Errorf("chart %s: %d labels for %d values", c.Name, len(c.Labels), len(c.Values))
	}

	png, err := r.draw(c)
	if err != nil {
		return "", fmt.Errorf("render chart %s: %w", c.Name, err)
	}

	url, err := r.sink.Put(ctx, c.Name, png)
	if err != nil {
		return "", fmt.Errorf("store chart %s: %w", c.Name, err)
	}
	return url, nil
}

func (r *ChartRenderer) draw(c Chart) ([]byte, error) {
	values := make([]chart.Value, len(c.Values))
	for i, v := range c.Values {
		values[i] = chart.Value{Label: c.Labels[i], Value: v}
	}

	var buf bytes.Buffer
	switch c.Kind {
	case KindPie:
		pie := chart.PieChart{
			Title:  c.Title,
			Width:  r.width,
			Height: r.height,
			Values: values,
		}
		if err := pie.Render(chart.PNG, &buf); err != nil {
			return nil, err
		}
	case KindBar, "":
		bar := chart.BarChart{
			Title:    c.Title,
			Width:    r.width,
			Height:   r.height,
			BarWidth: barWidth(r.width, len(values)),
			XAxis:    chart.Style{FontSize: 9},
			YAxis: chart.YAxis{
				Name:  c.YLabel,
				Range: &chart.ContinuousRange{Min: 0, Max: maxValue(c.Values) * 1.1},
			},
			Bars: values,
		}
		if err := bar.Render(chart.PNG, &buf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown chart kind %q", c.Kind)
	}

	return buf.Bytes(), nil
}

func barWidth(width, n int) int {
	w := width / (2 * (n + 1))
	if w > 60 {
		return 60
	}
	if w < 10 {
		return 10
	}
	return w
}

func maxValue(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
