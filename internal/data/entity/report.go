package entity

import "github.com/shopspring/decimal"

type StatusCount struct {
	Status string
	Count  int64
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type MonthlyTotal struct {
	Month int
	Total decimal.Decimal
}

type ProductPopularity struct {
	ProductID int64
	Name      string
	Count     int64
}
