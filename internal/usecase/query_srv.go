package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bizportal/internal/data/entity"
	"bizportal/internal/data/repository"
	"bizportal/internal/dto/request"
	"bizportal/internal/dto/response"
	"bizportal/internal/metrics"
	"bizportal/internal/report"
	"bizportal/internal/similarity"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

type QueryService interface {
	// Submit stores a pending query and immediately tries to answer it from
	// the first sufficiently similar complete query, in ascending id order.
	Submit(ctx context.Context, req *request.SubmitQueryRequest) (*response.QueryResponse, error)
	// Respond completes a query with response, overwriting any previous one.
	Respond(ctx context.Context, req *request.RespondQueryRequest) error
	ListPending(ctx context.Context) ([]response.QueryResponse, error)
	Page(ctx context.Context) (*response.QueryPageResponse, error)
}

type queryService struct {
	repo      *repository.Repository
	charts    chartMaker
	threshold float64
	now       func() time.Time
	log       *zap.Logger
}

func NewQueryService(repo *repository.Repository, renderer report.Renderer, config *utils.Config, log *zap.Logger) QueryService {
	threshold := config.Query.SimilarityThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = similarity.DefaultThreshold
	}

	log = log.With(zap.String("service", "query"))
	return &queryService{
		repo:      repo,
		charts:    chartMaker{renderer: renderer, log: log},
		threshold: threshold,
		now:       time.Now,
		log:       log,
	}
}

func (s *queryService) Submit(ctx context.Context, req *request.SubmitQueryRequest) (*response.QueryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	q := &entity.Query{
		Name:          req.Name,
		Email:         req.Email,
		Message:       req.Message,
		Status:        entity.QueryStatusPending,
		DateSubmitted: s.now(),
	}
	if err := s.repo.Query.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create query: %w", err)
	}
	metrics.QueriesSubmittedTotal.Inc()

	match, err := s.findSimilar(ctx, q)
	if err != nil {
		return nil, err
	}

	if match != nil {
		if err := s.repo.Query.Resolve(ctx, q.ID, *match.Response); err != nil {
			return nil, fmt.Errorf("auto-resolve query %d: %w", q.ID, err)
		}
		q.Status = entity.QueryStatusComplete
		q.Response = match.Response
		metrics.QueriesAutoResolvedTotal.Inc()
		s.log.Info("Query auto-resolved",
			zap.Int64("query_id", q.ID),
			zap.Int64("matched_query_id", match.ID),
		)
	}

	resp := response.QueryToResponse(*q)
	return &resp, nil
}

func (s *queryService) findSimilar(ctx context.Context, q *entity.Query) (*entity.Query, error) {
	candidates, err := s.repo.Query.FindByStatus(ctx, entity.QueryStatusComplete)
	if err != nil {
		return nil, fmt.Errorf("load complete queries: %w", err)
	}

	for i := range candidates {
		c := &candidates[i]
		if c.ID == q.ID || c.Response == nil {
			continue
		}
		if similarity.Matches(q.Message, c.Message, s.threshold) {
			return c, nil
		}
	}

	return nil, nil
}

func (s *queryService) Respond(ctx context.Context, req *request.RespondQueryRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	err := s.repo.Query.Resolve(ctx, req.QueryID, req.Response)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("respond to query %d: %w", req.QueryID, err)
	}

	metrics.QueriesRespondedTotal.Inc()
	s.log.Info("Query responded", zap.Int64("query_id", req.QueryID))
	return nil
}

func (s *queryService) ListPending(ctx context.Context) ([]response.QueryResponse, error) {
	queries, err := s.repo.Query.FindByStatus(ctx, entity.QueryStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending queries: %w", err)
	}
	return response.QueriesToResponse(queries), nil
}

func (s *queryService) Page(ctx context.Context) (*response.QueryPageResponse, error) {
	pending, err := s.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.Report.CountQueriesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count queries by status: %w", err)
	}

	return &response.QueryPageResponse{
		PendingQueries: pending,
		QueryStatusImg: s.charts.render(ctx, queryStatusChart(report.ChartQueryStatus, counts)),
	}, nil
}
