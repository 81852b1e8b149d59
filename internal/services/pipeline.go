package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"chicago-crime-analysis/internal/config"
	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"
	"chicago-crime-analysis/internal/repositories"

	"github.com/google/uuid"
)

var ErrNoRecords = errors.New("no crime records to analyze")

// PipelineDeps are the collaborators of a pipeline run. Loader, Verifier and
// Store may be nil when no stage needs the database.
type PipelineDeps struct {
	Ingest   IngestServiceInterface
	Loader   TableLoaderInterface
	Verifier VerificationServiceInterface
	Store    repositories.CrimeRepositoryInterface
	Analysis AnalysisServiceInterface
	Renderer ChartRendererInterface
	Printer  ReportPrinterInterface
	Tester   IndependenceTesterInterface
	Metrics  PipelineMetricsInterface
	Out      io.Writer
}

// PipelineResult collects what each stage produced
type PipelineResult struct {
	RunID        uuid.UUID
	Ingest       *IngestResult
	RowsLoaded   int
	Verification *VerificationReport
	Analyses     []*models.AnalysisResult
	Charts       []string
	Table        *models.ContingencyTable
	Independence *models.IndependenceResult
}

// Pipeline runs ingest, load, verify, analyze and the independence test in order
type Pipeline struct {
	cfg    *config.Config
	deps   PipelineDeps
	runID  uuid.UUID
	logger *slog.Logger
	stages *StageLogger
}

func NewPipeline(cfg *config.Config, deps PipelineDeps) *Pipeline {
	runID := uuid.New()
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	return &Pipeline{
		cfg:    cfg,
		deps:   deps,
		runID:  runID,
		logger: slog.Default().With("run_id", runID.String()),
		stages: NewStageLogger(slog.Default(), runID),
	}
}

// RunID identifies this run in logs
func (p *Pipeline) RunID() uuid.UUID {
	return p.runID
}

func (p *Pipeline) Run(ctx context.Context) (*PipelineResult, error) {
	result := &PipelineResult{RunID: p.runID}
	p.logger.Info("pipeline started",
		"load_store", p.cfg.Pipeline.LoadStore,
		"verify_store", p.cfg.Pipeline.VerifyStore,
		"analysis_source", p.cfg.Pipeline.AnalysisSource)

	start := time.Now()
	p.stages.Started(ctx, StageIngest)
	ingest, err := p.deps.Ingest.Ingest([]Source{
		HomicidesSource(p.cfg.Files.HomicidesFile),
		CrimesSource(p.cfg.Files.CrimesFile),
	}, p.cfg.Files.ArtifactFile)
	if err != nil {
		p.stages.Failed(ctx, StageIngest, err, time.Since(start))
		return result, err
	}
	result.Ingest = ingest
	p.stages.Completed(ctx, StageIngest, time.Since(start), slog.Int("records", len(ingest.Records)))

	if p.cfg.Pipeline.LoadStore {
		start = time.Now()
		p.stages.Started(ctx, StageLoad)
		n, err := p.load(ctx)
		if err != nil {
			p.stages.Failed(ctx, StageLoad, err, time.Since(start))
			return result, err
		}
		result.RowsLoaded = n
		p.stages.Completed(ctx, StageLoad, time.Since(start), slog.Int("rows", n))
	} else {
		p.stages.Skipped(ctx, StageLoad, "LOAD_STORE is off")
	}

	if p.cfg.Pipeline.LoadStore || p.cfg.Pipeline.VerifyStore {
		start = time.Now()
		p.stages.Started(ctx, StageVerify)
		report, err := p.verify()
		result.Verification = report
		if err != nil {
			p.stages.Failed(ctx, StageVerify, err, time.Since(start))
			return result, err
		}
		p.stages.Completed(ctx, StageVerify, time.Since(start), slog.Int64("rows", report.TableRows))
	} else {
		p.stages.Skipped(ctx, StageVerify, "no store stage enabled")
	}

	records, err := p.records(ctx, ingest)
	if err != nil {
		return result, err
	}
	if len(records) == 0 {
		return result, ErrNoRecords
	}

	start = time.Now()
	p.stages.Started(ctx, StageAnalyze)
	result.Analyses, result.Charts = p.analyze(records)
	p.stages.Completed(ctx, StageAnalyze, time.Since(start),
		slog.Int("analyses", len(result.Analyses)), slog.Int("charts", len(result.Charts)))

	start = time.Now()
	p.stages.Started(ctx, StageIndependence)
	table, independence, err := p.testIndependence(records)
	result.Table = table
	result.Independence = independence
	if err != nil {
		p.stages.Failed(ctx, StageIndependence, err, time.Since(start))
		return result, err
	}
	p.stages.Completed(ctx, StageIndependence, time.Since(start), slog.String("decision", independence.Decision))

	p.logger.Info("pipeline completed",
		"records", len(records),
		"charts", len(result.Charts),
		"decision", independence.Decision)
	return result, nil
}

func (p *Pipeline) load(ctx context.Context) (int, error) {
	if p.deps.Loader == nil {
		return 0, apperrors.New(apperrors.ConfigMissingValue, apperrors.WithDetails("store loader is not configured"))
	}

	start := time.Now()
	f, err := os.Open(p.cfg.Files.ArtifactFile)
	if err != nil {
		return 0, apperrors.New(apperrors.SystemIOError, apperrors.WithDetails("path="+p.cfg.Files.ArtifactFile), apperrors.WithCause(err))
	}
	defer f.Close()

	n, err := p.deps.Loader.Reload(ctx, f)
	if err != nil {
		return 0, err
	}

	p.deps.Metrics.RowsLoaded(n)
	p.deps.Metrics.StageDuration(StageLoad, time.Since(start))
	p.logger.Info("artifact loaded", "rows", n, "table", p.cfg.Database.QualifiedTable())
	return n, nil
}

func (p *Pipeline) verify() (*VerificationReport, error) {
	if p.deps.Verifier == nil {
		return nil, apperrors.New(apperrors.ConfigMissingValue, apperrors.WithDetails("store verifier is not configured"))
	}

	artifact, err := p.deps.Ingest.ReadArtifact(p.cfg.Files.ArtifactFile)
	if err != nil {
		return nil, err
	}

	report, err := p.deps.Verifier.Verify(artifact)
	p.deps.Printer.PrintVerification(p.deps.Out, report)
	return report, err
}

func (p *Pipeline) records(ctx context.Context, ingest *IngestResult) ([]models.CrimeRecord, error) {
	if p.cfg.Pipeline.AnalysisSource != config.AnalysisSourceStore {
		return ingest.Records, nil
	}

	if p.deps.Store == nil {
		return nil, apperrors.New(apperrors.ConfigMissingValue, apperrors.WithDetails("crime store is not configured"))
	}

	start := time.Now()
	p.stages.Started(ctx, StageReadStore)
	records, err := p.deps.Store.FindAll()
	if err != nil {
		p.stages.Failed(ctx, StageReadStore, err, time.Since(start))
		return nil, err
	}
	p.deps.Metrics.StageDuration(StageReadStore, time.Since(start))
	p.stages.Completed(ctx, StageReadStore, time.Since(start),
		slog.String("table", p.deps.Store.Table()), slog.Int("records", len(records)))
	return records, nil
}

// analyze prints and renders every analysis. A chart that fails to render is
// logged and skipped.
func (p *Pipeline) analyze(records []models.CrimeRecord) ([]*models.AnalysisResult, []string) {
	start := time.Now()
	results := p.deps.Analysis.RunAll(records)

	charts := make([]string, 0, len(results))
	for _, r := range results {
		p.deps.Printer.PrintAnalysis(p.deps.Out, r)

		path, err := p.deps.Renderer.Render(r.Chart)
		if err != nil {
			p.logger.Error("failed to render chart", "analysis", r.Name, "error", err)
			continue
		}
		charts = append(charts, path)
	}

	p.deps.Metrics.StageDuration(StageAnalyze, time.Since(start))
	return results, charts
}

func (p *Pipeline) testIndependence(records []models.CrimeRecord) (*models.ContingencyTable, *models.IndependenceResult, error) {
	start := time.Now()

	table, err := BuildDistrictTheftArrestTable(records, p.cfg.Analysis.ChiDistricts, p.cfg.Analysis.ExcludedDistrict)
	if err != nil {
		return nil, nil, err
	}

	critical := p.cfg.Analysis.CriticalValue
	if critical == 0 {
		df := (table.Rows() - 1) * (table.Columns() - 1)
		critical, err = p.deps.Tester.CriticalValue(p.cfg.Analysis.SignificanceLevel, df)
		if err != nil {
			return table, nil, err
		}
	}

	result, err := p.deps.Tester.Test(table, critical)
	if err != nil {
		return table, nil, err
	}

	p.deps.Metrics.IndependenceTested(result.Statistic, result.PValue)
	p.deps.Metrics.StageDuration(StageIndependence, time.Since(start))
	p.deps.Printer.PrintIndependence(p.deps.Out, table, result)
	p.logger.Info("independence tested",
		"districts", p.cfg.Analysis.ChiDistricts,
		"statistic", result.Statistic,
		"critical_value", result.CriticalValue,
		"p_value", result.PValue,
		"decision", result.Decision)

	return table, result, nil
}
