package adaptor

import (
	"bizportal/internal/session"
	"bizportal/internal/usecase"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Home      *HomeHandler
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Query     *QueryHandler
	Dashboard *DashboardHandler
}

func NewHandler(service *usecase.Service, sessions *session.Manager, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Home:      NewHomeHandler(sessions, log),
		Auth:      NewAuthHandler(service.Auth, sessions, config.MFA.ExposeCode, log),
		Catalog:   NewCatalogHandler(service.Catalog, log),
		Query:     NewQueryHandler(service.Query, sessions, log),
		Dashboard: NewDashboardHandler(service.Dashboard, sessions, log),
	}
}
