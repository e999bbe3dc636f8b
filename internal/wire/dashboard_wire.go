package wire

import (
	"bizportal/internal/adaptor"
	"bizportal/internal/authz"

	"github.com/go-chi/chi/v5"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, g guards) {
	// ==================== ROLE ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.login())

		r.With(g.role(authz.OpDashboardSales)).Get("/sales", dashboardHandler.Sales)
		r.With(g.role(authz.OpDashboardIncome)).Get("/income", dashboardHandler.Income)
		r.With(g.role(authz.OpDashboardDeveloper)).Get("/developer", dashboardHandler.Developer)
		r.With(g.role(authz.OpDashboardPartner)).Get("/partner", dashboardHandler.Partner)
	})
}
