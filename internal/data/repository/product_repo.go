package repository

import (
	"context"
	"fmt"

	"bizportal/internal/data/entity"
	"bizportal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	// FindAll lists products ordered by id. An empty category lists all.
	FindAll(ctx context.Context, category string) ([]entity.Product, error)
	// Categories lists the distinct product categories in name order.
	Categories(ctx context.Context) ([]string, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) FindAll(ctx context.Context, category string) ([]entity.Product, error) {
	query := `
		SELECT id, name, category, price::text
		FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		r.log.Error("Failed to query products", zap.Error(err), zap.String("category", category))
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product", zap.Error(err))
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		r.log.Error("Failed to query categories", zap.Error(err))
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		product entity.Product
		price   string
	)
	if err := row.Scan(&product.ID, &product.Name, &product.Category, &price); err != nil {
		return nil, err
	}

	amount, err := parseDecimal(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	product.Price = amount

	return &product, nil
}
