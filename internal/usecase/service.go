package usecase

import (
	"bizportal/internal/data/repository"
	"bizportal/internal/report"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Catalog   CatalogService
	Query     QueryService
	Dashboard DashboardService
}

func NewService(
	repo *repository.Repository,
	sender CodeSender,
	renderer report.Renderer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	if sender == nil {
		sender = NewLogCodeSender(log)
	}
	if renderer == nil {
		renderer = report.NopRenderer{}
	}
	return &Service{
		Auth:      NewAuthService(repo, sender, config, log),
		Catalog:   NewCatalogService(repo, log),
		Query:     NewQueryService(repo, renderer, config, log),
		Dashboard: NewDashboardService(repo, renderer, log),
	}
}
