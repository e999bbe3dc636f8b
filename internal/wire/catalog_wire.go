package wire

import (
	"bizportal/internal/adaptor"
	"bizportal/internal/authz"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, g guards) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.login())

		r.With(g.role(authz.OpProductsList)).Get("/products", catalogHandler.GetProducts)
		r.With(g.role(authz.OpSalesBuy)).Post("/buy", catalogHandler.Buy)
	})
}
