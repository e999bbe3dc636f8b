package cmd

import (
	"context"

	"go.uber.org/zap"
)

func runMigrate(ctx context.Context, envFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	config, logger, err := loadConfigAndLogger(envFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := migrate(ctx, config.Database); err != nil {
		logger.Error("Failed to migrate database", zap.Error(err))
		return err
	}

	logger.Info("Database migrated", zap.String("database", config.Database.Name))
	return nil
}
