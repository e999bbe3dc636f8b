package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bizportal/internal/data/entity"
	"bizportal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SaleRepository interface {
	// CreateFromProduct records a sale whose amount is the product's current
	// price. Returns ErrNotFound and writes nothing if the product is absent.
	CreateFromProduct(ctx context.Context, productID, userID int64, at time.Time) (*entity.Sale, error)
	FindByUserID(ctx context.Context, userID int64) ([]entity.SaleDetail, error)
	FindAll(ctx context.Context) ([]entity.SaleDetail, error)
}

type saleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSaleRepository(db database.PgxIface, log *zap.Logger) SaleRepository {
	return &saleRepository{
		db:  db,
		log: log.With(zap.String("repository", "sale")),
	}
}

func (r *saleRepository) CreateFromProduct(ctx context.Context, productID, userID int64, at time.Time) (*entity.Sale, error) {
	query := `
		INSERT INTO sales (product_id, user_id, amount, sale_date)
		SELECT p.id, $2, p.price, $3
		FROM products p
		WHERE p.id = $1
		RETURNING id, amount::text, sale_date
	`

	sale := entity.Sale{ProductID: productID, UserID: userID}
	var amount string
	err := r.db.QueryRow(ctx, query, productID, userID, at).Scan(&sale.ID, &amount, &sale.SaleDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to create sale",
			zap.Error(err),
			zap.Int64("product_id", productID),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("create sale of product %d: %w", productID, err)
	}

	if sale.Amount, err = parseDecimal(amount); err != nil {
		return nil, fmt.Errorf("parse sale amount %q: %w", amount, err)
	}

	return &sale, nil
}

const saleDetailSelect = `
	SELECT s.id, s.product_id, s.user_id, s.amount::text, s.sale_date, p.name, p.category
	FROM sales s
	JOIN products p ON p.id = s.product_id
`

func (r *saleRepository) FindByUserID(ctx context.Context, userID int64) ([]entity.SaleDetail, error) {
	rows, err := r.db.Query(ctx, saleDetailSelect+` WHERE s.user_id = $1 ORDER BY s.id ASC`, userID)
	if err != nil {
		r.log.Error("Failed to query sales by user", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("query sales of user %d: %w", userID, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *saleRepository) FindAll(ctx context.Context) ([]entity.SaleDetail, error) {
	rows, err := r.db.Query(ctx, saleDetailSelect+` ORDER BY s.id ASC`)
	if err != nil {
		r.log.Error("Failed to query sales", zap.Error(err))
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *saleRepository) collect(rows pgx.Rows) ([]entity.SaleDetail, error) {
	var sales []entity.SaleDetail
	for rows.Next() {
		var (
			s      entity.SaleDetail
			amount string
		)
		if err := rows.Scan(&s.ID, &s.ProductID, &s.UserID, &amount, &s.SaleDate, &s.ProductName, &s.Category); err != nil {
			r.log.Error("Failed to scan sale", zap.Error(err))
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		d, err := parseDecimal(amount)
		if err != nil {
			return nil, fmt.Errorf("parse sale amount %q: %w", amount, err)
		}
		s.Amount = d
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	return sales, nil
}
