package entity

import "github.com/shopspring/decimal"

const (
	CategoryRAM         = "RAM"
	CategoryHardDrive   = "Hard Drive"
	CategoryMotherboard = "Motherboard"
)

type Product struct {
	ID       int64           `db:"id"`
	Name     string          `db:"name"`
	Category string          `db:"category"`
	Price    decimal.Decimal `db:"price"`
}
