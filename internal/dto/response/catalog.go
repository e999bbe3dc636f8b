package response

import (
	"time"

	"bizportal/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

func ProductToResponse(p entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price}
}

func ProductsToResponse(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductToResponse(p))
	}
	return out
}

type SaleResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	UserID      int64           `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	SaleDate    time.Time       `json:"sale_date"`
	ProductName string          `json:"name,omitempty"`
	Category    string          `json:"category,omitempty"`
}

func SaleToResponse(s entity.Sale) SaleResponse {
	return SaleResponse{ID: s.ID, ProductID: s.ProductID, UserID: s.UserID, Amount: s.Amount, SaleDate: s.SaleDate}
}

func SaleDetailsToResponse(sales []entity.SaleDetail) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		r := SaleToResponse(s.Sale)
		r.ProductName = s.ProductName
		r.Category = s.Category
		out = append(out, r)
	}
	return out
}

type PurchaseResponse struct {
	Message string       `json:"message"`
	Sale    SaleResponse `json:"sale"`
}
