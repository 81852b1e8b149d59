package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"
	"chicago-crime-analysis/internal/repositories"
)

var ErrVerificationMismatch = errors.New("artifact and table disagree")

// VerificationReport compares the artifact with the loaded table
type VerificationReport struct {
	Table         string             `json:"table"`
	ArtifactRows  int64              `json:"artifact_rows"`
	TableRows     int64              `json:"table_rows"`
	ArtifactYears []models.YearCount `json:"artifact_years"`
	TableYears    []models.YearCount `json:"table_years"`
	RowCountMatch bool               `json:"row_count_match"`
	YearsMatch    bool               `json:"years_match"`
}

// OK reports whether both checks passed
func (r *VerificationReport) OK() bool {
	return r.RowCountMatch && r.YearsMatch
}

type verificationService struct {
	repo    repositories.CrimeRepositoryInterface
	metrics PipelineMetricsInterface
}

func NewVerificationService(repo repositories.CrimeRepositoryInterface, metrics PipelineMetricsInterface) VerificationServiceInterface {
	return &verificationService{
		repo:    repo,
		metrics: metrics,
	}
}

// Verify compares the artifact records with the table: total row count first,
// then the per-year distribution ordered by year
func (s *verificationService) Verify(records []models.CrimeRecord) (*VerificationReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.StageDuration(StageVerify, time.Since(start))
	}()

	if !s.repo.Exists() {
		s.metrics.VerificationCompleted(false)
		return nil, apperrors.New(apperrors.StoreTableMissing, apperrors.WithDetails("table="+s.repo.Table()))
	}

	tableRows, err := s.repo.Count()
	if err != nil {
		return nil, err
	}

	tableYears, err := s.repo.CountByYear()
	if err != nil {
		return nil, err
	}

	report := &VerificationReport{
		Table:         s.repo.Table(),
		ArtifactRows:  int64(len(records)),
		TableRows:     tableRows,
		ArtifactYears: YearCounts(records),
		TableYears:    tableYears,
	}
	report.RowCountMatch = report.ArtifactRows == report.TableRows
	report.YearsMatch = equalYearCounts(report.ArtifactYears, report.TableYears)

	s.metrics.VerificationCompleted(report.OK())

	if !report.RowCountMatch {
		slog.Error("row count mismatch", "table", report.Table, "artifact_rows", report.ArtifactRows, "table_rows", report.TableRows)
		return report, apperrors.New(apperrors.VerifyRowCountMismatch,
			apperrors.WithDetails(
				"table="+report.Table,
				fmt.Sprintf("artifact=%d", report.ArtifactRows),
				fmt.Sprintf("table=%d", report.TableRows),
			),
			apperrors.WithCause(ErrVerificationMismatch))
	}

	if !report.YearsMatch {
		slog.Error("per-year distribution mismatch", "table", report.Table)
		return report, apperrors.New(apperrors.VerifyYearMismatch,
			apperrors.WithDetails(yearDiff(report.ArtifactYears, report.TableYears)...),
			apperrors.WithCause(ErrVerificationMismatch))
	}

	slog.Info("verification passed", "table", report.Table, "rows", report.TableRows, "years", len(report.TableYears))
	return report, nil
}

// YearCounts counts records per year, ordered by year
func YearCounts(records []models.CrimeRecord) []models.YearCount {
	counts := make(map[int]int64)
	for i := range records {
		counts[records[i].Year]++
	}

	result := make([]models.YearCount, 0, len(counts))
	for year, n := range counts {
		result = append(result, models.YearCount{Year: year, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Year < result[j].Year
	})
	return result
}

func equalYearCounts(a, b []models.YearCount) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func yearDiff(artifact, table []models.YearCount) []string {
	inTable := make(map[int]int64, len(table))
	for _, yc := range table {
		inTable[yc.Year] = yc.Count
	}

	var diffs []string
	seen := make(map[int]bool, len(artifact))
	for _, yc := range artifact {
		seen[yc.Year] = true
		if got := inTable[yc.Year]; got != yc.Count {
			diffs = append(diffs, fmt.Sprintf("year %d: artifact=%d table=%d", yc.Year, yc.Count, got))
		}
	}
	for _, yc := range table {
		if !seen[yc.Year] {
			diffs = append(diffs, fmt.Sprintf("year %d: artifact=0 table=%d", yc.Year, yc.Count))
		}
	}
	return diffs
}
