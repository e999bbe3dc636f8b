package repository

import (
	"context"
	"fmt"

	"bizportal/internal/data/entity"
	"bizportal/pkg/database"

	"go.uber.org/zap"
)

// ReportRepository holds the read-only aggregates behind the dashboards.
type ReportRepository interface {
	CountQueriesByStatus(ctx context.Context) ([]entity.StatusCount, error)
	SalesByCategory(ctx context.Context) ([]entity.CategoryTotal, error)
	IncomeByMonth(ctx context.Context) ([]entity.MonthlyTotal, error)
	TopProducts(ctx context.Context, limit int) ([]entity.ProductPopularity, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

func (r *reportRepository) CountQueriesByStatus(ctx context.Context) ([]entity.StatusCount, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM queries GROUP BY status ORDER BY status`)
	if err != nil {
		r.log.Error("Failed to count queries by status", zap.Error(err))
		return nil, fmt.Errorf("count queries by status: %w", err)
	}
	defer rows.Close()

	var counts []entity.StatusCount
	for rows.Next() {
		var c entity.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

func (r *reportRepository) SalesByCategory(ctx context.Context) ([]entity.CategoryTotal, error) {
	query := `
		SELECT p.category, SUM(s.amount)::text
		FROM sales s
		JOIN products p ON p.id = s.product_id
		GROUP BY p.category
		ORDER BY p.category
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to sum sales by category", zap.Error(err))
		return nil, fmt.Errorf("sum sales by category: %w", err)
	}
	defer rows.Close()

	var totals []entity.CategoryTotal
	for rows.Next() {
		var (
			t   entity.CategoryTotal
			sum string
		)
		if err := rows.Scan(&t.Category, &sum); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		if t.Total, err = parseDecimal(sum); err != nil {
			return nil, fmt.Errorf("parse category total %q: %w", sum, err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (r *reportRepository) IncomeByMonth(ctx context.Context) ([]entity.MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(MONTH FROM sale_date)::int AS month, SUM(amount)::text
		FROM sales
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to sum income by month", zap.Error(err))
		return nil, fmt.Errorf("sum income by month: %w", err)
	}
	defer rows.Close()

	var totals []entity.MonthlyTotal
	for rows.Next() {
		var (
			t   entity.MonthlyTotal
			sum string
		)
		if err := rows.Scan(&t.Month, &sum); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		if t.Total, err = parseDecimal(sum); err != nil {
			return nil, fmt.Errorf("parse monthly total %q: %w", sum, err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]entity.ProductPopularity, error) {
	query := `
		SELECT p.id, p.name, COUNT(s.id) AS sold
		FROM sales s
		JOIN products p ON p.id = s.product_id
		GROUP BY p.id, p.name
		ORDER BY sold DESC, p.id ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to rank products", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("rank products: %w", err)
	}
	defer rows.Close()

	var ranked []entity.ProductPopularity
	for rows.Next() {
		var p entity.ProductPopularity
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Count); err != nil {
			return nil, fmt.Errorf("scan product popularity: %w", err)
		}
		ranked = append(ranked, p)
	}

	return ranked, rows.Err()
}
