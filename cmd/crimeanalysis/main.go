package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chicago-crime-analysis/internal/config"
	"chicago-crime-analysis/internal/database"
	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/repositories"
	"chicago-crime-analysis/internal/services"
	"chicago-crime-analysis/internal/validation"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg := config.Load()
	if err := validation.GetValidator().Struct(cfg, apperrors.ConfigInvalidValue); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("pipeline failed", "error", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	metrics := services.NewPipelineMetrics()
	defer writeMetrics(metrics, cfg.Files.MetricsFile)

	aggregator := services.NewAggregator(cfg.Analysis.ExcludedDistrict)
	deps := services.PipelineDeps{
		Ingest:   services.NewIngestService(cfg.Analysis.ExcludedDistrict, validation.GetValidator(), metrics),
		Analysis: services.NewAnalysisService(aggregator, cfg.Analysis),
		Renderer: services.NewChartRenderer(cfg.Files.OutputDir, metrics),
		Printer:  services.NewReportPrinter(),
		Tester:   services.NewIndependenceTester(),
		Metrics:  metrics,
		Out:      os.Stdout,
	}

	if cfg.NeedsStore() {
		if !cfg.Database.IsConfigured() {
			return apperrors.New(apperrors.ConfigMissingValue,
				apperrors.WithDetails("set DATABASE_URL or DB_HOST, DB_USER and DB_NAME"))
		}

		sqlDB, err := database.OpenSQL(&cfg.Database)
		if err != nil {
			return apperrors.New(apperrors.StoreConnectionFailed, apperrors.WithCause(err))
		}
		defer sqlDB.Close()

		if err := database.RunMigrationsIfEnabled(sqlDB, cfg.Pipeline.AutoMigrate); err != nil {
			return apperrors.New(apperrors.StoreConnectionFailed, apperrors.WithCause(err))
		}

		db, err := database.New(&cfg.Database)
		if err != nil {
			return apperrors.New(apperrors.StoreConnectionFailed, apperrors.WithCause(err))
		}
		defer db.Close()

		deps.Loader = database.NewTableLoader(sqlDB, cfg.Database.Schema, cfg.Database.Table)
		deps.Verifier = services.NewVerificationService(
			repositories.NewCrimeRepository(db.DB, cfg.Database.QualifiedVerifyTable()), metrics)
		deps.Store = repositories.NewCrimeRepository(db.DB, cfg.Database.QualifiedTable())
	}

	pipeline := services.NewPipeline(cfg, deps)
	_, err := pipeline.Run(ctx)
	return err
}

func writeMetrics(metrics *services.PrometheusMetrics, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		slog.Warn("failed to write metrics file", "path", path, "error", err)
	}
}

func exitCode(err error) int {
	if apperrors.IsInvalidInput(err) {
		return 2
	}
	if code, ok := apperrors.CodeOf(err); ok && (code == apperrors.ConfigMissingValue || code == apperrors.ConfigInvalidValue) {
		return 2
	}
	if errors.Is(err, services.ErrVerificationMismatch) {
		return 3
	}
	return 1
}
