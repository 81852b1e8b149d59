package services

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	minChartWidth  = 10 * vg.Inch
	chartHeight    = 8 * vg.Inch
	widthPerLabel  = 0.4 * vg.Inch
	maxBarWidth    = 40.0
	barWidthFactor = 0.6
)

type chartRenderer struct {
	outputDir string
	metrics   PipelineMetricsInterface
}

// NewChartRenderer creates a PNG renderer writing under outputDir
func NewChartRenderer(outputDir string, metrics PipelineMetricsInterface) ChartRendererInterface {
	return &chartRenderer{
		outputDir: outputDir,
		metrics:   metrics,
	}
}

// Render draws the series as overlaid bars, in order, and saves the image.
// It returns the path written.
func (r *chartRenderer) Render(spec models.ChartSpec) (string, error) {
	path, err := r.render(spec)
	r.metrics.ChartRendered(err == nil)
	if err != nil {
		return "", apperrors.New(apperrors.SystemRenderError,
			apperrors.WithDetails("chart="+spec.FileName), apperrors.WithCause(err))
	}

	slog.Info("chart rendered", "title", spec.Title, "path", path, "categories", len(spec.Labels))
	return path, nil
}

func (r *chartRenderer) render(spec models.ChartSpec) (string, error) {
	if spec.FileName == "" {
		return "", fmt.Errorf("chart has no file name")
	}
	for _, series := range spec.Series {
		if len(series.Values) != len(spec.Labels) {
			return "", fmt.Errorf("series %q has %d values for %d labels", series.Name, len(series.Values), len(spec.Labels))
		}
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Y.Min = 0

	width := chartWidth(len(spec.Labels))

	if len(spec.Labels) > 0 {
		barWidth := vg.Points(math.Min(maxBarWidth, barWidthFactor*width.Points()/float64(len(spec.Labels)+1)))
		for i, series := range spec.Series {
			bars, err := plotter.NewBarChart(plotter.Values(series.Values), barWidth)
			if err != nil {
				return "", fmt.Errorf("failed to build series %q: %w", series.Name, err)
			}
			bars.LineStyle.Width = vg.Length(0)
			bars.Color = plotutil.Color(i)
			p.Add(bars)
			if spec.HasLegend() {
				p.Legend.Add(series.Name, bars)
			}
		}
		p.NominalX(spec.Labels...)
	}

	p.Legend.Top = true
	if spec.RotateTicks {
		p.X.Tick.Label.Rotation = math.Pi / 2
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	path := filepath.Join(r.outputDir, spec.FileName)
	if err := p.Save(width, chartHeight, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	return path, nil
}

func chartWidth(labels int) vg.Length {
	w := vg.Length(labels) * widthPerLabel
	if w < minChartWidth {
		return minChartWidth
	}
	return w
}
