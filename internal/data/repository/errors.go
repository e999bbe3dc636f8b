package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrRoleQuotaExceeded = errors.New("role quota exceeded")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// NUMERIC columns are selected as text and parsed here to keep them exact.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
