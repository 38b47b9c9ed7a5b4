package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"activityapp/internal/adapter/cache"
	"activityapp/internal/adapter/database"
	"activityapp/internal/adapter/http/routes"
	"activityapp/internal/adapter/storage"
	"activityapp/internal/adapter/telemetry"
	"activityapp/internal/core/port"
	"activityapp/pkg/auth"
	"activityapp/pkg/config"
)

const (
	serviceVersion  = "1.0.0"
	typesCacheTTL   = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// StartServer runs until ctx is cancelled and then drains in-flight requests.
func StartServer(ctx context.Context, cfg *config.AppConfig, logger *config.Logger) error {
	gin.SetMode(cfg.GinMode)

	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    routes.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		TracingEnabled: cfg.TelemetryEnabled,
	}, slog.Default())

	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	db, err := openDatabase(ctx, cfg)

	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	defer db.Close()

	cacheRepo, err := openCache(ctx, cfg, logger)

	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	defer cacheRepo.Close()

	container := NewContainer(Dependencies{
		DB:        db,
		Cache:     cacheRepo,
		Storage:   storage.NewLocalStorage(cfg.UploadsPath),
		Telemetry: tel.NewTelemetryProbe(),
		Tokens:    auth.NewJWT(cfg.JWTSecret, cfg.JWTTTL),
	})

	router := routes.SetupRouterWithConfig(container.Handlers(), tel.AppMetrics, logger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("database_driver", cfg.DatabaseDriver),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
		zap.Bool("https_enforced", cfg.EnforceHTTPS))

	serverErr := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}

		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return tel.Shutdown(shutdownCtx)
}

func openDatabase(ctx context.Context, cfg *config.AppConfig) (*database.DB, error) {
	opts := database.Options{
		Name:       routes.ServiceName,
		LogQueries: cfg.DBLogQueries,
	}

	if cfg.DatabaseDriver == "postgres" {
		return database.NewPostgres(ctx, cfg.DatabaseURL, opts)
	}

	return database.NewSQLite(ctx, cfg.DatabasePath, opts)
}

// openCache prefers Redis and falls back to the in-process cache.
func openCache(ctx context.Context, cfg *config.AppConfig, logger *config.Logger) (port.CacheRepository, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryRepository(typesCacheTTL), nil
	}

	redisRepo, err := cache.NewRedisRepository(ctx, cfg.RedisURL)

	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Using redis cache")

	return redisRepo, nil
}
