package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dompetku/dompetku/internal/app"
	"github.com/dompetku/dompetku/internal/forecast"
	"github.com/dompetku/dompetku/internal/goals"
	"github.com/dompetku/dompetku/internal/ledger"
	"github.com/dompetku/dompetku/internal/observability"
	"github.com/dompetku/dompetku/internal/platform/cache"
	"github.com/dompetku/dompetku/internal/platform/db"
	"github.com/dompetku/dompetku/internal/profile"
	"github.com/dompetku/dompetku/internal/stats"
	"github.com/dompetku/dompetku/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	forecaster := forecast.New(cfg.ZoneThresholds())
	forecastHandler := forecast.NewHandler(logger, forecaster)

	ledgerRepo := ledger.NewRepository(dbpool)
	ledgerService := ledger.NewService(ledgerRepo, forecaster, jobClient, logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	accuracyStore := stats.NewAccuracyStore(redisClient, 0)
	statsRepo := stats.NewRepository(dbpool)
	statsService := stats.NewService(statsRepo, accuracyStore)
	statsHandler := stats.NewHandler(logger, statsService)

	goalsRepo := goals.NewRepository(dbpool)
	goalsService := goals.NewService(goalsRepo, logger)
	goalsHandler := goals.NewHandler(logger, goalsService)

	profileRepo := profile.NewRepository(dbpool)
	profileService := profile.NewService(profileRepo, logger)
	profileHandler := profile.NewHandler(logger, profileService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ForecastHandler: forecastHandler,
		LedgerHandler:   ledgerHandler,
		StatsHandler:    statsHandler,
		GoalsHandler:    goalsHandler,
		ProfileHandler:  profileHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
