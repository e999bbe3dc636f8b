package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is insert-only. Amount is the product price at purchase time.
type Sale struct {
	ID        int64           `db:"id"`
	ProductID int64           `db:"product_id"`
	UserID    int64           `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	SaleDate  time.Time       `db:"sale_date"`
}

// SaleDetail is a sale joined with its product.
type SaleDetail struct {
	Sale
	ProductName string `db:"name"`
	Category    string `db:"category"`
}
