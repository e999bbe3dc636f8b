package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"bizportal/internal/data/entity"
	"bizportal/internal/dto/request"
	"bizportal/internal/metrics"
	"bizportal/internal/report"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func completeQuery(message, response string) entity.Query {
	return entity.Query{
		Name:          "past",
		Email:         "past@example.com",
		Message:       message,
		Status:        entity.QueryStatusComplete,
		Response:      strPtr(response),
		DateSubmitted: time.Now(),
	}
}

func submit(t *testing.T, svc *Service, message string) entity.Query {
	t.Helper()
	resp, err := svc.Query.Submit(context.Background(), &request.SubmitQueryRequest{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: message,
	})
	require.NoError(t, err)
	return entity.Query{ID: resp.ID, Status: resp.Status, Response: resp.Response, Message: resp.Message}
}

func TestSubmit_IdenticalMessageAutoCompletes(t *testing.T) {
	svc, store, _, _ := newTestServices(t)
	store.AddQuery(completeQuery("My RAM stick is not detected", "Reseat the module."))
	before := testutil.ToFloat64(metrics.QueriesAutoResolvedTotal)

	q := submit(t, svc, "My RAM stick is not detected")

	assert.Equal(t, entity.QueryStatusComplete, q.Status)
	require.NotNil(t, q.Response)
	assert.Equal(t, "Reseat the module.", *q.Response)

	stored, ok := store.Query(q.ID)
	require.True(t, ok)
	assert.Equal(t, entity.QueryStatusComplete, stored.Status)
	assert.Equal(t, "Reseat the module.", *stored.Response)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.QueriesAutoResolvedTotal))
}

func TestSubmit_CaseInsensitiveMatch(t *testing.T) {
	svc, store, _, _ := newTestServices(t)
	store.AddQuery(completeQuery("WHERE IS MY ORDER?", "It shipped today."))

	q := submit(t, svc, "where is my order?")
	assert.Equal(t, entity.QueryStatusComplete, q.Status)
}

func TestSubmit_ThresholdIsStrict(t *testing.T) {
	t.Run("0.80 stays pending", func(t *testing.T) {
		svc, store, _, _ := newTestServices(t)
		store.AddQuery(completeQuery(strings.Repeat("a", 80)+strings.Repeat("b", 20), "answer"))

		q := submit(t, svc, strings.Repeat("a", 80)+strings.Repeat("c", 20))
		assert.Equal(t, entity.QueryStatusPending, q.Status)
		assert.Nil(t, q.Response)
	})

	t.Run("0.81 matches", func(t *testing.T) {
		svc, store, _, _ := newTestServices(t)
		store.AddQuery(completeQuery(strings.Repeat("a", 81)+strings.Repeat("b", 19), "answer"))

		q := submit(t, svc, strings.Repeat("a", 81)+strings.Repeat("c", 19))
		assert.Equal(t, entity.QueryStatusComplete, q.Status)
		assert.Equal(t, "answer", *q.Response)
	})
}

func TestSubmit_FirstMatchByAscendingID(t *testing.T) {
	svc, store, _, _ := newTestServices(t)
	store.AddQuery(completeQuery("refund for my broken motherboard", "first"))
	store.AddQuery(completeQuery("refund for my broken motherboard", "second"))

	q := submit(t, svc, "refund for my broken motherboard")
	assert.Equal(t, "first", *q.Response)
}

func TestSubmit_SkipsCandidatesWithoutResponse(t *testing.T) {
	svc, store, _, _ := newTestServices(t)
	store.AddQuery(entity.Query{Message: "disk is clicking", Status: entity.QueryStatusComplete})
	store.AddQuery(completeQuery("disk is clicking", "Back up now."))

	q := submit(t, svc, "disk is clicking")
	assert.Equal(t, "Back up now.", *q.Response)
}

func TestSubmit_PendingCandidatesIgnored(t *testing.T) {
	svc, store, _, _ := newTestServices(t)
	store.AddQuery(entity.Query{Message: "same words", Status: entity.QueryStatusPending})

	q := submit(t, svc, "same words")
	assert.Equal(t, entity.QueryStatusPending, q.Status)
}

func TestSubmit_Validation(t *testing.T) {
	svc, _, _, _ := newTestServices(t)

	_, err := svc.Query.Submit(context.Background(), &request.SubmitQueryRequest{Name: "Jane", Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Query.Submit(context.Background(), &request.SubmitQueryRequest{Name: "Jane", Message: "hello"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmit_AcceptsAnyNonEmptyEmail(t *testing.T) {
	svc, store, _, _ := newTestServices(t)

	resp, err := svc.Query.Submit(context.Background(), &request.SubmitQueryRequest{
		Name:    "Bob",
		Email:   "bob",
		Message: "Does the board support ECC memory?",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.QueryStatusPending, resp.Status)

	stored, ok := store.Query(resp.ID)
	require.True(t, ok)
	assert.Equal(t, "bob", stored.Email)
}

func TestRespond(t *testing.T) {
	svc, store, _, _ := newTestServices(t)
	ctx := context.Background()
	q := submit(t, svc, "unique question")

	require.NoError(t, svc.Query.Respond(ctx, &request.RespondQueryRequest{QueryID: q.ID, Response: "one"}))
	require.NoError(t, svc.Query.Respond(ctx, &request.RespondQueryRequest{QueryID: q.ID, Response: "two"}))

	stored, _ := store.Query(q.ID)
	assert.Equal(t, entity.QueryStatusComplete, stored.Status)
	assert.Equal(t, "two", *stored.Response)

	err := svc.Query.Respond(ctx, &request.RespondQueryRequest{QueryID: 999, Response: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryPage(t *testing.T) {
	svc, store, _, renderer := newTestServices(t)
	store.AddQuery(completeQuery("old", "done"))
	submit(t, svc, "brand new question nobody asked")

	page, err := svc.Query.Page(context.Background())
	require.NoError(t, err)

	require.Len(t, page.PendingQueries, 1)
	assert.Equal(t, "brand new question nobody asked", page.PendingQueries[0].Message)
	assert.Equal(t, "/static/charts/query_status.png", page.QueryStatusImg)

	chart := renderer.charts[report.ChartQueryStatus]
	assert.Equal(t, []string{"complete", "pending"}, chart.Labels)
	assert.Equal(t, []float64{1, 1}, chart.Values)
}

func TestQueryPage_RenderFailureDegrades(t *testing.T) {
	svc, store, _, renderer := newTestServices(t)
	renderer.err = errRender
	store.AddQuery(completeQuery("old", "done"))
	before := testutil.ToFloat64(metrics.ChartRenderFailuresTotal.WithLabelValues(report.ChartQueryStatus))

	page, err := svc.Query.Page(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page.QueryStatusImg)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ChartRenderFailuresTotal.WithLabelValues(report.ChartQueryStatus)))
}
