package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

type memorySink struct {
	images map[string][]byte
	err    error
}

func (m *memorySink) Put(_ context.Context, name string, png []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.images == nil {
		m.images = map[string][]byte{}
	}
	m.images[name] = png
	return "/charts/" + name + ".png", nil
}

func TestChartRenderer_Bar(t *testing.T) {
	sink := &memorySink{}
	r := NewChartRenderer(sink)

	url, err := r.Render(context.Background(), Chart{
		Name:   ChartSalesCategory,
		Kind:   KindBar,
		Title:  "Sales by Category",
		Labels: []string{"RAM", "Hard Drive"},
		Values: []float64{120.5, 80},
	})
	require.NoError(t, err)
	assert.Equal(t, "/charts/sales_category.png", url)
	assert.True(t, bytes.HasPrefix(sink.images[ChartSalesCategory], pngMagic))
}

func TestChartRenderer_Pie(t *testing.T) {
	sink := &memorySink{}
	r := NewChartRenderer(sink)

	url, err := r.Render(context.Background(), Chart{
		Name:   ChartQueryStatus,
		Kind:   KindPie,
		Labels: []string{"complete", "pending"},
		Values: []float64{3, 1},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.True(t, bytes.HasPrefix(sink.images[ChartQueryStatus], pngMagic))
}

func TestChartRenderer_EmptySeriesSkipped(t *testing.T) {
	sink := &memorySink{}
	r := NewChartRenderer(sink)

	for _, c := range []Chart{
		{Name: "a", Kind: KindBar},
		{Name: "b", Kind: KindPie, Labels: []string{"x"}, Values: []float64{0}},
	} {
		url, err := r.Render(context.Background(), c)
		require.NoError(t, err)
		assert.Empty(t, url)
	}
	assert.Empty(t, sink.images)
}

func TestChartRenderer_SinkError(t *testing.T) {
	r := NewChartRenderer(&memorySink{err: errors.New("disk full")})

	_, err := r.Render(context.Background(), Chart{Name: "x", Labels: []string{"a"}, Values: []float64{1}})
	assert.ErrorContains(t, err, "disk full")
}

func TestNopRenderer(t *testing.T) {
	url, err := NopRenderer{}.Render(context.Background(), Chart{Name: "x", Labels: []string{"a"}, Values: []float64{1}})
	assert.NoError(t, err)
	assert.Empty(t, url)
}

func TestFileSink_Overwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	s := NewFileSink(dir, "/static/charts")

	url, err := s.Put(context.Background(), "income_statement", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, "/static/charts/income_statement.png", url)

	_, err = s.Put(context.Background(), "income_statement", []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "income_statement.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Put(t *testing.T) {
	p := &fakePutter{}
	s := NewS3Sink(p, "reports", "charts/", "http://minio:9000/")

	url, err := s.Put(context.Background(), "product_popularity", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000/reports/charts/product_popularity.png", url)
	assert.Equal(t, "reports", aws.ToString(p.input.Bucket))
	assert.Equal(t, "charts/product_popularity.png", aws.ToString(p.input.Key))
	assert.Equal(t, "image/png", aws.ToString(p.input.ContentType))
	assert.Equal(t, "png", string(p.body))
}
