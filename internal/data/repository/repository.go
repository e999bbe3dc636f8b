package repository

import (
	"bizportal/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	MFA     MFARepository
	Product ProductRepository
	Sale    SaleRepository
	Query   QueryRepository
	Report  ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		MFA:     NewMFARepository(db, log),
		Product: NewProductRepository(db, log),
		Sale:    NewSaleRepository(db, log),
		Query:   NewQueryRepository(db, log),
		Report:  NewReportRepository(db, log),
	}
}
