package cmd

import (
	"context"
	"testing"

	"bizportal/internal/report"
	"bizportal/internal/session"
	"bizportal/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])

	flag := root.PersistentFlags().Lookup("env")
	require.NotNil(t, flag)
	assert.Equal(t, ".env", flag.DefValue)
}

func TestNewRenderer(t *testing.T) {
	ctx := context.Background()
	config := &utils.Config{Chart: utils.ChartConfig{Dir: t.TempDir(), URLPrefix: "/static/charts"}}

	config.Chart.Backend = "file"
	r, err := newRenderer(ctx, config, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &report.ChartRenderer{}, r)

	config.Chart.Backend = "none"
	r, err = newRenderer(ctx, config, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, report.NopRenderer{}, r)

	config.Chart.Backend = "gif"
	_, err = newRenderer(ctx, config, zap.NewNop())
	assert.Error(t, err)
}

func TestNewRevoker(t *testing.T) {
	ctx := context.Background()

	r, closeFn, err := newRevoker(ctx, utils.RedisConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, session.NopRevoker{}, r)
	closeFn()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	r, closeFn, err = newRevoker(ctx, utils.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &session.RedisRevoker{}, r)
}
