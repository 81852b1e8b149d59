package services

import (
	"context"
	"io"
	"time"

	"chicago-crime-analysis/internal/models"
)

// AggregatorInterface groups crime records and derives arrest rates
type AggregatorInterface interface {
	CountBy(records []models.CrimeRecord, key KeyFunc, filter RecordFilter) []models.CategoryCount
	CountByPair(records []models.CrimeRecord, primary, secondary KeyFunc, filter RecordFilter) []models.PairCount
	ArrestRates(records []models.CrimeRecord, key KeyFunc, minSupport float64) []models.ArrestRate
	TopArrestRates(rates []models.ArrestRate, n int) []models.ArrestRate
	BottomArrestRates(rates []models.ArrestRate, n int) []models.ArrestRate
}

// IndependenceTesterInterface runs a chi-squared test of independence
type IndependenceTesterInterface interface {
	Test(table *models.ContingencyTable, criticalValue float64) (*models.IndependenceResult, error)
	CriticalValue(alpha float64, df int) (float64, error)
}

// IngestServiceInterface reads the raw exports and the intermediate artifact
type IngestServiceInterface interface {
	Ingest(sources []Source, artifactPath string) (*IngestResult, error)
	ReadSource(src Source) ([]models.CrimeRecord, error)
	WriteArtifact(path string, records []models.CrimeRecord) error
	ReadArtifact(path string) ([]models.CrimeRecord, error)
}

// VerificationServiceInterface checks that the table matches the artifact
type VerificationServiceInterface interface {
	Verify(records []models.CrimeRecord) (*VerificationReport, error)
}

// AnalysisServiceInterface produces the descriptive analyses
type AnalysisServiceInterface interface {
	TheftCrimesAndArrests(records []models.CrimeRecord) *models.AnalysisResult
	HomicidesByDistrict(records []models.CrimeRecord) *models.AnalysisResult
	CrimeTypeCount(records []models.CrimeRecord) *models.AnalysisResult
	TheftsPerDistrict(records []models.CrimeRecord) *models.AnalysisResult
	TheftArrestsPerDistrict(records []models.CrimeRecord) *models.AnalysisResult
	HighestArrestRates(records []models.CrimeRecord) *models.AnalysisResult
	LowestArrestRates(records []models.CrimeRecord) *models.AnalysisResult
	RunAll(records []models.CrimeRecord) []*models.AnalysisResult
}

// ChartRendererInterface writes chart images
type ChartRendererInterface interface {
	Render(spec models.ChartSpec) (string, error)
}

// TableLoaderInterface replaces the crime table contents with an artifact
type TableLoaderInterface interface {
	Reload(ctx context.Context, artifact io.Reader) (int, error)
}

// ReportPrinterInterface writes human readable summaries
type ReportPrinterInterface interface {
	PrintAnalysis(w io.Writer, result *models.AnalysisResult)
	PrintIndependence(w io.Writer, table *models.ContingencyTable, result *models.IndependenceResult)
	PrintVerification(w io.Writer, report *VerificationReport)
}

// PipelineMetricsInterface records pipeline progress
type PipelineMetricsInterface interface {
	RecordsRead(source string, n int)
	RecordsFiltered(n int)
	RowsLoaded(n int)
	ChartRendered(ok bool)
	StageDuration(stage string, duration time.Duration)
	IndependenceTested(statistic, pValue float64)
	VerificationCompleted(ok bool)
}
