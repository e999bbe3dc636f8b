package wire

import (
	"bizportal/internal/adaptor"
	"bizportal/internal/authz"

	"github.com/go-chi/chi/v5"
)

func wireQuery(r chi.Router, queryHandler *adaptor.QueryHandler, g guards) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.login())

		r.With(g.role(authz.OpQueriesView)).Get("/query", queryHandler.QueryPage)
		r.With(g.role(authz.OpQueriesSubmit)).Post("/query", queryHandler.Submit)
		r.With(g.role(authz.OpQueriesRespond)).Post("/respond_query", queryHandler.Respond)
	})
}
