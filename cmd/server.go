package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bizportal/internal/data/repository"
	"bizportal/internal/session"
	"bizportal/internal/usecase"
	"bizportal/internal/wire"
	"bizportal/pkg/database"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, envFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, logger, err := loadConfigAndLogger(envFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if config.App.AutoMigrate {
		if err := migrate(ctx, config.Database); err != nil {
			logger.Error("Failed to migrate database", zap.Error(err))
			return err
		}
		logger.Info("Database migrated")
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	revoker, closeRevoker, err := newRevoker(ctx, config.Redis, logger)
	if err != nil {
		logger.Error("Failed to connect to redis", zap.Error(err))
		return err
	}
	defer closeRevoker()

	renderer, err := newRenderer(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to set up chart renderer", zap.Error(err))
		return err
	}

	app := wire.Wiring(wire.Deps{
		Repo:     repository.NewRepository(db, logger),
		Sessions: session.NewManager(config.Session, revoker, logger),
		Sender:   usecase.NewLogCodeSender(logger),
		Renderer: renderer,
	}, config, logger)

	return APIServer(ctx, app.Router, config.App.Port, logger)
}

// APIServer serves route until ctx is cancelled, then drains in-flight
// requests.
func APIServer(ctx context.Context, route *chi.Mux, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
