package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bizportal/internal/data/repository"
	"bizportal/internal/dto/request"
	"bizportal/internal/dto/response"
	"bizportal/internal/metrics"

	"go.uber.org/zap"
)

type CatalogService interface {
	// ListProducts returns every product for "" or "all", otherwise the
	// products of exactly that category.
	ListProducts(ctx context.Context, category string) ([]response.ProductResponse, error)
	Purchase(ctx context.Context, buyerID int64, req *request.BuyRequest) (*response.SaleResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListProducts(ctx context.Context, category string) ([]response.ProductResponse, error) {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") {
		category = ""
	}

	products, err := s.repo.Product.FindAll(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return response.ProductsToResponse(products), nil
}

func (s *catalogService) Purchase(ctx context.Context, buyerID int64, req *request.BuyRequest) (*response.SaleResponse, error) {
	sale, err := s.repo.Sale.CreateFromProduct(ctx, req.ProductID, buyerID, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("Purchase of unknown product", zap.Int64("product_id", req.ProductID))
		metrics.PurchasesTotal.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	metrics.PurchasesTotal.WithLabelValues("recorded").Inc()
	s.log.Info("Sale recorded",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("product_id", sale.ProductID),
		zap.Int64("user_id", buyerID),
		zap.String("amount", sale.Amount.StringFixed(2)),
	)

	resp := response.SaleToResponse(*sale)
	return &resp, nil
}
