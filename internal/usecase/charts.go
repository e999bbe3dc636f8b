package usecase

import (
	"context"

	"bizportal/internal/data/entity"
	"bizportal/internal/metrics"
	"bizportal/internal/report"

	"go.uber.org/zap"
)

// chartMaker renders best effort: any failure yields an empty URL.
type chartMaker struct {
	renderer report.Renderer
	log      *zap.Logger
}

func (c chartMaker) render(ctx context.Context, chart report.Chart) string {
	url, err := c.renderer.Render(ctx, chart)
	if err != nil {
		c.log.Warn("Chart render failed", zap.Error(err), zap.String("chart", chart.Name))
		metrics.ChartRenderFailuresTotal.WithLabelValues(chart.Name).Inc()
		return ""
	}
	return url
}

func queryStatusChart(name string, counts []entity.StatusCount) report.Chart {
	c := report.Chart{Name: name, Kind: report.KindPie, Title: "Query Status Distribution"}
	for _, sc := range counts {
		c.Labels = append(c.Labels, sc.Status)
		c.Values = append(c.Values, float64(sc.Count))
	}
	return c
}
