package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bizportal/internal/data/entity"
	"bizportal/internal/data/repository/repotest"
	"bizportal/internal/report"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Query: utils.QueryConfig{SimilarityThreshold: 0.8},
	}
}

type recordingSender struct {
	mu    sync.Mutex
	codes map[int64]string
	err   error
}

func (s *recordingSender) SendCode(_ context.Context, user *entity.User, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.codes == nil {
		s.codes = map[int64]string{}
	}
	s.codes[user.ID] = code
	return nil
}

func (s *recordingSender) last(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[userID]
}

type recordingRenderer struct {
	mu     sync.Mutex
	charts map[string]report.Chart
	err    error
}

func (r *recordingRenderer) Render(_ context.Context, c report.Chart) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.charts == nil {
		r.charts = map[string]report.Chart{}
	}
	r.charts[c.Name] = c
	if r.err != nil {
		return "", r.err
	}
	if c.Empty() {
		return "", nil
	}
	return "/static/charts/" + c.Name + ".png", nil
}

var errRender = errors.New("render failed")

func newTestServices(t *testing.T) (*Service, *repotest.Store, *recordingSender, *recordingRenderer) {
	t.Helper()
	store := repotest.NewStore()
	sender := &recordingSender{}
	renderer := &recordingRenderer{}
	svc := NewService(store.Repository(), sender, renderer, testConfig(), zap.NewNop())
	return svc, store, sender, renderer
}
