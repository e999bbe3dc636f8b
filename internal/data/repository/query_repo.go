package repository

import (
	"context"
	"fmt"

	"bizportal/internal/data/entity"
	"bizportal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type QueryRepository interface {
	Create(ctx context.Context, q *entity.Query) error
	// FindByStatus returns queries in ascending id order.
	FindByStatus(ctx context.Context, status entity.QueryStatus) ([]entity.Query, error)
	// Resolve marks the query complete with response. Returns ErrNotFound
	// when no row has the id.
	Resolve(ctx context.Context, id int64, response string) error
}

type queryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQueryRepository(db database.PgxIface, log *zap.Logger) QueryRepository {
	return &queryRepository{
		db:  db,
		log: log.With(zap.String("repository", "query")),
	}
}

const queryColumns = `id, name, email, message, status, response, date_submitted`

func (r *queryRepository) Create(ctx context.Context, q *entity.Query) error {
	if q.Status == "" {
		q.Status = entity.QueryStatusPending
	}

	query := `
		INSERT INTO queries (name, email, message, status, date_submitted)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		q.Name,
		q.Email,
		q.Message,
		string(q.Status),
		q.DateSubmitted,
	).Scan(&q.ID)
	if err != nil {
		r.log.Error("Failed to create query",
			zap.Error(err),
			zap.String("email", q.Email),
		)
		return fmt.Errorf("create query from %s: %w", q.Email, err)
	}

	return nil
}

func (r *queryRepository) FindByStatus(ctx context.Context, status entity.QueryStatus) ([]entity.Query, error) {
	sql := `SELECT ` + queryColumns + ` FROM queries WHERE status = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, sql, string(status))
	if err != nil {
		r.log.Error("Failed to query by status", zap.Error(err), zap.String("status", string(status)))
		return nil, fmt.Errorf("query %s queries: %w", status, err)
	}
	defer rows.Close()

	var queries []entity.Query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			r.log.Error("Failed to scan query", zap.Error(err))
			return nil, fmt.Errorf("scan query: %w", err)
		}
		queries = append(queries, *q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queries: %w", err)
	}

	return queries, nil
}

func (r *queryRepository) Resolve(ctx context.Context, id int64, response string) error {
	query := `
		UPDATE queries
		SET status = $2, response = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, string(entity.QueryStatusComplete), response)
	if err != nil {
		r.log.Error("Failed to resolve query", zap.Error(err), zap.Int64("query_id", id))
		return fmt.Errorf("resolve query %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanQuery(row pgx.Row) (*entity.Query, error) {
	var (
		q      entity.Query
		status string
	)
	err := row.Scan(&q.ID, &q.Name, &q.Email, &q.Message, &status, &q.Response, &q.DateSubmitted)
	if err != nil {
		return nil, err
	}
	q.Status = entity.QueryStatus(status)
	return &q, nil
}
