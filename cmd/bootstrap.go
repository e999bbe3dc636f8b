package cmd

import (
	"context"
	"fmt"
	"log"

	"bizportal/internal/data/migrations"
	"bizportal/internal/report"
	"bizportal/internal/session"
	"bizportal/pkg/database"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

func loadConfigAndLogger(envFile string) (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfigFrom(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}

func migrate(ctx context.Context, config utils.DatabaseConfig) error {
	db, err := database.OpenSQL(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// newRevoker uses redis when configured; without it logout only clears the
// cookie.
func newRevoker(ctx context.Context, config utils.RedisConfig, logger *zap.Logger) (session.Revoker, func(), error) {
	if config.Addr == "" {
		logger.Warn("REDIS_ADDR not set, session revocation disabled")
		return session.NopRevoker{}, func() {}, nil
	}

	client, err := session.ConnectRedis(ctx, config.Addr, config.Password, config.DB)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Redis connected", zap.String("addr", config.Addr))
	return session.NewRedisRevoker(client), func() { _ = client.Close() }, nil
}

func newRenderer(ctx context.Context, config *utils.Config, logger *zap.Logger) (report.Renderer, error) {
	switch config.Chart.Backend {
	case "file":
		return report.NewChartRenderer(report.NewFileSink(config.Chart.Dir, config.Chart.URLPrefix)), nil

	case "s3":
		client, err := report.NewS3Client(ctx, config.S3)
		if err != nil {
			return nil, err
		}
		sink := report.NewS3Sink(client, config.S3.Bucket, config.S3.Prefix, report.S3BaseURL(config.S3))
		return report.NewChartRenderer(sink), nil

	case "none", "":
		logger.Info("Chart rendering disabled")
		return report.NopRenderer{}, nil

	default:
		return nil, fmt.Errorf("unknown chart backend %q", config.Chart.Backend)
	}
}
