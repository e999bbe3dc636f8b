package usecase

import (
	"context"
	"testing"

	"bizportal/internal/dto/request"
	"bizportal/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSales(t *testing.T, svc *Service, store interface {
	AddProduct(name, category, price string) int64
}) (ram, hdd int64) {
	t.Helper()
	ctx := context.Background()
	ram = store.AddProduct("Corsair Vengeance LPX 16GB DDR4", "RAM", "50.00")
	hdd = store.AddProduct("Seagate 2TB", "Hard Drive", "70.00")

	for _, buy := range []struct{ user, product int64 }{{1, ram}, {1, ram}, {2, hdd}} {
		_, err := svc.Catalog.Purchase(ctx, buy.user, &request.BuyRequest{ProductID: buy.product})
		require.NoError(t, err)
	}
	return ram, hdd
}

func TestSalesDashboard(t *testing.T) {
	svc, store, _, renderer := newTestServices(t)
	seedSales(t, svc, store)

	page, err := svc.Dashboard.Sales(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, page.Sales, 2)
	assert.Equal(t, "RAM", page.Sales[0].Category)
	assert.Equal(t, "/static/charts/sales_category.png", page.SalesCategoryImg)
	// No queries yet: nothing to draw.
	assert.Empty(t, page.QueryStatusImg)

	chart := renderer.charts[report.ChartSalesCategory]
	assert.Equal(t, []string{"Hard Drive", "RAM"}, chart.Labels)
	assert.Equal(t, []float64{70, 100}, chart.Values)
}

func TestIncomeDashboard(t *testing.T) {
	svc, store, _, _ := newTestServices(t)
	seedSales(t, svc, store)

	page, err := svc.Dashboard.Income(context.Background())
	require.NoError(t, err)

	require.Len(t, page.SalesData, 1)
	assert.Equal(t, "170.00", page.SalesData[0].Total.StringFixed(2))
	assert.NotEmpty(t, page.IncomeStatementImg)
}

func TestPartnerDashboard(t *testing.T) {
	svc, store, _, renderer := newTestServices(t)
	seedSales(t, svc, store)

	page, err := svc.Dashboard.Partner(context.Background())
	require.NoError(t, err)

	assert.Len(t, page.Products, 2)
	assert.Equal(t, []string{"Hard Drive", "RAM"}, page.Categories)
	assert.Len(t, page.Sales, 3)

	chart := renderer.charts[report.ChartProductPopularity]
	assert.Equal(t, []string{"Corsair Vengeance LP", "Seagate 2TB"}, chart.Labels)
	assert.Equal(t, []float64{2, 1}, chart.Values)
}

func TestDashboards_RenderFailureDegrades(t *testing.T) {
	svc, store, _, renderer := newTestServices(t)
	seedSales(t, svc, store)
	renderer.err = errRender
	ctx := context.Background()

	sales, err := svc.Dashboard.Sales(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, sales.SalesCategoryImg)
	assert.Len(t, sales.Sales, 2)

	income, err := svc.Dashboard.Income(ctx)
	require.NoError(t, err)
	assert.Empty(t, income.IncomeStatementImg)

	partner, err := svc.Dashboard.Partner(ctx)
	require.NoError(t, err)
	assert.Empty(t, partner.ProductPopularityImg)
}

func TestDeveloperDashboard(t *testing.T) {
	svc, _, _, _ := newTestServices(t)

	page, err := svc.Dashboard.Developer(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, page.Message)
}
