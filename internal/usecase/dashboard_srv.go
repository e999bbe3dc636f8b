package usecase

import (
	"context"
	"fmt"
	"strconv"

	"bizportal/internal/data/repository"
	"bizportal/internal/dto/response"
	"bizportal/internal/report"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

const (
	topProductsLimit  = 5
	productLabelRunes = 20
)

// DashboardService gathers each role dashboard. Charts are drawn after all
// reads and never fail the page.
type DashboardService interface {
	Sales(ctx context.Context, userID int64) (*response.SalesDashboardResponse, error)
	Income(ctx context.Context) (*response.IncomeDashboardResponse, error)
	Developer(ctx context.Context) (*response.DeveloperDashboardResponse, error)
	Partner(ctx context.Context) (*response.PartnerDashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	charts chartMaker
	log    *zap.Logger
}

func NewDashboardService(repo *repository.Repository, renderer report.Renderer, log *zap.Logger) DashboardService {
	log = log.With(zap.String("service", "dashboard"))
	return &dashboardService{
		repo:   repo,
		charts: chartMaker{renderer: renderer, log: log},
		log:    log,
	}
}

func (s *dashboardService) Sales(ctx context.Context, userID int64) (*response.SalesDashboardResponse, error) {
	sales, err := s.repo.Sale.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own sales: %w", err)
	}

	counts, err := s.repo.Report.CountQueriesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count queries by status: %w", err)
	}

	totals, err := s.repo.Report.SalesByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum sales by category: %w", err)
	}

	byCategory := report.Chart{
		Name:   report.ChartSalesCategory,
		Kind:   report.KindBar,
		Title:  "Sales by Category",
		XLabel: "Category",
		YLabel: "Total Sales",
	}
	for _, t := range totals {
		byCategory.Labels = append(byCategory.Labels, t.Category)
		byCategory.Values = append(byCategory.Values, t.Total.InexactFloat64())
	}

	return &response.SalesDashboardResponse{
		Sales:            response.SaleDetailsToResponse(sales),
		QueryStatusImg:   s.charts.render(ctx, queryStatusChart(report.ChartQueryStatusSales, counts)),
		SalesCategoryImg: s.charts.render(ctx, byCategory),
	}, nil
}

func (s *dashboardService) Income(ctx context.Context) (*response.IncomeDashboardResponse, error) {
	totals, err := s.repo.Report.IncomeByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum income by month: %w", err)
	}

	chart := report.Chart{
		Name:   report.ChartIncomeStatement,
		Kind:   report.KindBar,
		Title:  "Monthly Income Statement",
		XLabel: "Month",
		YLabel: "Income",
	}
	data := make([]response.MonthlyIncome, 0, len(totals))
	for _, t := range totals {
		data = append(data, response.MonthlyIncome{Month: t.Month, Total: t.Total})
		chart.Labels = append(chart.Labels, strconv.Itoa(t.Month))
		chart.Values = append(chart.Values, t.Total.InexactFloat64())
	}

	return &response.IncomeDashboardResponse{
		SalesData:          data,
		IncomeStatementImg: s.charts.render(ctx, chart),
	}, nil
}

func (s *dashboardService) Developer(_ context.Context) (*response.DeveloperDashboardResponse, error) {
	return &response.DeveloperDashboardResponse{Message: "Developer dashboard"}, nil
}

func (s *dashboardService) Partner(ctx context.Context) (*response.PartnerDashboardResponse, error) {
	products, err := s.repo.Product.FindAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	categories, err := s.repo.Product.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	sales, err := s.repo.Sale.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	top, err := s.repo.Report.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("rank products: %w", err)
	}

	chart := report.Chart{
		Name:   report.ChartProductPopularity,
		Kind:   report.KindBar,
		Title:  "Top 5 Products by Sales",
		XLabel: "Product",
		YLabel: "Number of Sales",
	}
	for _, p := range top {
		chart.Labels = append(chart.Labels, utils.Truncate(p.Name, productLabelRunes))
		chart.Values = append(chart.Values, float64(p.Count))
	}

	return &response.PartnerDashboardResponse{
		Products:             response.ProductsToResponse(products),
		Categories:           categories,
		Sales:                response.SaleDetailsToResponse(sales),
		ProductPopularityImg: s.charts.render(ctx, chart),
	}, nil
}
