package services

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"
	"chicago-crime-analysis/internal/validation"
)

const (
	SourceHomicides = "homicides"
	SourceCrimes    = "crimes"
)

// Source is one raw export. The raw schemas differ only by a leading index
// column and a trailing location column, which are dropped before renaming.
type Source struct {
	Name      string
	Path      string
	DropFirst bool
	DropLast  bool
}

// HomicidesSource describes the homicide export: trailing location column only
func HomicidesSource(path string) Source {
	return Source{Name: SourceHomicides, Path: path, DropLast: true}
}

// CrimesSource describes the 2012-2017 crimes export: leading index and trailing location columns
func CrimesSource(path string) Source {
	return Source{Name: SourceCrimes, Path: path, DropFirst: true, DropLast: true}
}

// IngestResult is the merged, filtered record set
type IngestResult struct {
	Records      []models.CrimeRecord
	ReadBySource map[string]int
	Filtered     int
}

type ingestService struct {
	excludedDistrict int
	validator        *validation.Validator
	metrics          PipelineMetricsInterface
}

// NewIngestService creates the reader/merger for the raw exports
func NewIngestService(excludedDistrict int, validator *validation.Validator, metrics PipelineMetricsInterface) IngestServiceInterface {
	return &ingestService{
		excludedDistrict: excludedDistrict,
		validator:        validator,
		metrics:          metrics,
	}
}

// Ingest reads every source in order, concatenates them, drops the excluded
// district and writes the tab-delimited artifact
func (s *ingestService) Ingest(sources []Source, artifactPath string) (*IngestResult, error) {
	start := time.Now()
	result := &IngestResult{ReadBySource: make(map[string]int, len(sources))}

	var merged []models.CrimeRecord
	for _, src := range sources {
		records, err := s.ReadSource(src)
		if err != nil {
			return nil, err
		}
		result.ReadBySource[src.Name] = len(records)
		s.metrics.RecordsRead(src.Name, len(records))
		merged = append(merged, records...)
	}

	result.Records = models.ExcludeDistrict(merged, s.excludedDistrict)
	result.Filtered = len(merged) - len(result.Records)
	s.metrics.RecordsFiltered(result.Filtered)

	if err := s.WriteArtifact(artifactPath, result.Records); err != nil {
		return nil, err
	}

	s.metrics.StageDuration(StageIngest, time.Since(start))
	slog.Info("ingest completed",
		"sources", len(sources),
		"records", len(result.Records),
		"filtered_district", s.excludedDistrict,
		"filtered", result.Filtered,
		"artifact", artifactPath)

	return result, nil
}

// ReadSource parses one comma-separated export with a header row
func (s *ingestService) ReadSource(src Source) ([]models.CrimeRecord, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, apperrors.New(apperrors.SystemIOError,
			apperrors.WithDetails("source="+src.Name, "path="+src.Path), apperrors.WithCause(err))
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	records, err := s.readRows(reader, src, func(row []string) []string {
		return trimColumns(row, src.DropFirst, src.DropLast)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("source read", "source", src.Name, "path", src.Path, "records", len(records))
	return records, nil
}

// WriteArtifact writes records as a tab-delimited file with a header row
func (s *ingestService) WriteArtifact(path string, records []models.CrimeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.New(apperrors.SystemIOError, apperrors.WithDetails("path="+path), apperrors.WithCause(err))
	}
	defer f.Close()

	if err := models.WriteArtifact(f, records); err != nil {
		return apperrors.New(apperrors.SystemIOError, apperrors.WithDetails("path="+path), apperrors.WithCause(err))
	}

	return f.Close()
}

// ReadArtifact loads a file written by WriteArtifact
func (s *ingestService) ReadArtifact(path string) ([]models.CrimeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.New(apperrors.SystemIOError, apperrors.WithDetails("path="+path), apperrors.WithCause(err))
	}
	defer f.Close()

	reader := models.NewArtifactReader(f)
	return s.readRows(reader, Source{Name: "artifact", Path: path}, nil)
}

func (s *ingestService) readRows(reader *csv.Reader, src Source, transform func([]string) []string) ([]models.CrimeRecord, error) {
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.CrimeRecord{}, nil
		}
		return nil, apperrors.New(apperrors.InputMalformedRow,
			apperrors.WithDetails("source="+src.Name, "line=1"), apperrors.WithCause(err))
	}

	var records []models.CrimeRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.New(apperrors.InputMalformedRow,
				apperrors.WithDetails("source="+src.Name), apperrors.WithCause(err))
		}
		line, _ := reader.FieldPos(0)

		if transform != nil {
			row = transform(row)
		}
		if len(row) != len(models.Columns) {
			return nil, apperrors.NewInvalidInput(apperrors.InputMalformedRow,
				"%s line %d: expected %d fields after trimming, got %d", src.Name, line, len(models.Columns), len(row))
		}

		record, err := models.ParseCrimeRow(row)
		if err != nil {
			return nil, apperrors.New(apperrors.InputInvalidField,
				apperrors.WithDetails("source="+src.Name, fmt.Sprintf("line=%d", line)), apperrors.WithCause(err))
		}

		if s.validator != nil {
			if err := s.validator.Struct(&record, apperrors.InputInvalidField); err != nil {
				return nil, fmt.Errorf("%s line %d: %w", src.Name, line, err)
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func trimColumns(row []string, dropFirst, dropLast bool) []string {
	if dropFirst && len(row) > 0 {
		row = row[1:]
	}
	if dropLast && len(row) > 0 {
		row = row[:len(row)-1]
	}
	return row
}
