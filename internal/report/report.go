// Package report turns aggregated series into chart images. Rendering is a
// capability: callers hold a Renderer and treat an empty URL as "no chart".
package report

import (
	"context"
)

type Kind string

const (
	KindBar Kind = "bar"
	KindPie Kind = "pie"
)

// Fixed chart names. Each render overwrites the previous image.
const (
	ChartQueryStatus       = "query_status"
	ChartQueryStatusSales  = "query_status_sales"
	ChartSalesCategory     = "sales_category"
	ChartIncomeStatement   = "income_statement"
	ChartProductPopularity = "product_popularity"
)

// Chart is an already aggregated series. Labels and Values are parallel.
type Chart struct {
	Name   string
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
}

// Empty reports whether there is nothing worth drawing.
func (c Chart) Empty() bool {
	var sum float64
	for _, v := range c.Values {
		sum += v
	}
	return len(c.Values) == 0 || sum == 0
}

type Renderer interface {
	// Render stores the chart image and returns its URL, or "" when the
	// chart has no data.
	Render(ctx context.Context, chart Chart) (string, error)
}

// NopRenderer never produces an image.
type NopRenderer struct{}

func (NopRenderer) Render(context.Context, Chart) (string, error) { return "", nil }
