package response

import (
	"github.com/shopspring/decimal"
)

type SalesDashboardResponse struct {
	Sales            []SaleResponse `json:"sales"`
	QueryStatusImg   string         `json:"query_status_img"`
	SalesCategoryImg string         `json:"sales_category_img"`
}

type MonthlyIncome struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type IncomeDashboardResponse struct {
	SalesData          []MonthlyIncome `json:"sales_data"`
	IncomeStatementImg string          `json:"income_statement_img"`
}

type DeveloperDashboardResponse struct {
	Message string `json:"message"`
}

type PartnerDashboardResponse struct {
	Products             []ProductResponse `json:"products"`
	Categories           []string          `json:"categories"`
	Sales                []SaleResponse    `json:"sales"`
	ProductPopularityImg string            `json:"product_popularity_img"`
}
