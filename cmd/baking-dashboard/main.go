package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"baking-dashboard/internal/auth"
	"baking-dashboard/internal/config"
	"baking-dashboard/internal/db"
	httphandler "baking-dashboard/internal/http"
	"baking-dashboard/internal/http/middleware"
	"baking-dashboard/internal/logger"
	"baking-dashboard/internal/model"
	"baking-dashboard/internal/repository"
	"baking-dashboard/internal/service"
)

type eventSource interface {
	Source() string
	Load(ctx context.Context) (*model.Dataset, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)
	ctx := context.Background()

	source, err := newEventSource(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	dataset, err := source.Load(ctx)
	if err != nil {
		appLogger.Fatal().Err(err).Str("source", source.Source()).Msg("failed to load dataset")
	}
	summary := dataset.Summary()
	appLogger.Info().
		Str("source", source.Source()).
		Int("rows", summary.Rows).
		Int("undated_rows", summary.UndatedRows).
		Bool("model_column", summary.HasModelColumn).
		Msg("dataset loaded")

	reportService := service.NewReportService(cfg.Data.ReportPath, cfg.Data.ReportFilename)
	if err := reportService.Check(); err != nil {
		appLogger.Fatal().Err(err).Msg("report file unavailable")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	datasetRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "baking_dashboard",
		Name:      "dataset_rows",
		Help:      "Scan events loaded at startup.",
	})
	registry.MustRegister(datasetRows)
	datasetRows.Set(float64(summary.Rows))

	bakingService := service.NewBakingService(dataset, cfg.Baking)

	authMiddleware := middleware.NoAuth()
	if cfg.Auth.AccessSecret != "" {
		authMiddleware = middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	}

	handler := httphandler.NewHandler(bakingService, reportService, logoURL(cfg), appLogger)
	router := httphandler.NewRouter(handler, authMiddleware, httphandler.RouterOptions{
		Environment: cfg.Environment,
		AssetsDir:   cfg.Data.AssetsDir,
		Registry:    registry,
		Logger:      appLogger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting baking dashboard")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}

func newEventSource(cfg *config.Config, log zerolog.Logger) (eventSource, error) {
	if !cfg.UseDatabase() {
		return repository.NewWorkbookRepository(cfg.Data.DatasetPath), nil
	}

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return repository.NewScanEventRepository(database), nil
}

// logoURL is empty when the logo file is missing, which hides the sidebar image.
func logoURL(cfg *config.Config) string {
	if cfg.Data.AssetsDir == "" || cfg.Data.LogoFile == "" {
		return ""
	}
	if _, err := os.Stat(filepath.Join(cfg.Data.AssetsDir, cfg.Data.LogoFile)); err != nil {
		return ""
	}
	return "/assets/" + cfg.Data.LogoFile
}
