package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	StageIngest       = "ingest"
	StageLoad         = "load"
	StageVerify       = "verify"
	StageReadStore    = "read_store"
	StageAnalyze      = "analyze"
	StageIndependence = "independence"
)

// StageLogger emits one structured event per pipeline stage transition
type StageLogger struct {
	logger *slog.Logger
	runID  uuid.UUID
}

func NewStageLogger(logger *slog.Logger, runID uuid.UUID) *StageLogger {
	return &StageLogger{
		logger: logger,
		runID:  runID,
	}
}

func (sl *StageLogger) Started(ctx context.Context, stage string) {
	sl.logger.InfoContext(ctx, "stage started",
		slog.String("event_type", "stage_started"),
		slog.String("stage", stage),
		slog.String("run_id", sl.runID.String()),
		slog.Time("timestamp", time.Now()),
	)
}

func (sl *StageLogger) Completed(ctx context.Context, stage string, duration time.Duration, attrs ...slog.Attr) {
	all := []slog.Attr{
		slog.String("event_type", "stage_completed"),
		slog.String("stage", stage),
		slog.String("run_id", sl.runID.String()),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Time("timestamp", time.Now()),
	}
	all = append(all, attrs...)

	sl.logger.LogAttrs(ctx, slog.LevelInfo, "stage completed", all...)
}

func (sl *StageLogger) Failed(ctx context.Context, stage string, err error, duration time.Duration) {
	sl.logger.ErrorContext(ctx, "stage failed",
		slog.String("event_type", "stage_failed"),
		slog.String("stage", stage),
		slog.String("run_id", sl.runID.String()),
		slog.String("error", err.Error()),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Time("timestamp", time.Now()),
	)
}

func (sl *StageLogger) Skipped(ctx context.Context, stage, reason string) {
	sl.logger.InfoContext(ctx, "stage skipped",
		slog.String("event_type", "stage_skipped"),
		slog.String("stage", stage),
		slog.String("run_id", sl.runID.String()),
		slog.String("reason", reason),
	)
}
