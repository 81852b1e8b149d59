package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	registry          *prometheus.Registry
	recordsRead       *prometheus.CounterVec
	recordsFiltered   prometheus.Counter
	rowsLoaded        prometheus.Counter
	chartsRendered    *prometheus.CounterVec
	stageDuration     *prometheus.HistogramVec
	chiSquaredStat    prometheus.Gauge
	chiSquaredPValue  prometheus.Gauge
	verificationState prometheus.Gauge
}

// NewPipelineMetrics registers the pipeline metrics on a private registry so
// that one run's numbers can be written out as a textfile
func NewPipelineMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		recordsRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crime_records_read_total",
				Help: "Total number of crime records read per source file",
			},
			[]string{"source"},
		),
		recordsFiltered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crime_records_filtered_total",
				Help: "Total number of records dropped for the excluded district",
			},
		),
		rowsLoaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crime_rows_loaded_total",
				Help: "Total number of rows bulk-loaded into the crime table",
			},
		),
		chartsRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crime_charts_rendered_total",
				Help: "Total number of chart images rendered",
			},
			[]string{"status"},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crime_pipeline_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
			},
			[]string{"stage"},
		),
		chiSquaredStat: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crime_chi_squared_statistic",
				Help: "Chi-squared statistic of the district theft/arrest independence test",
			},
		),
		chiSquaredPValue: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crime_chi_squared_p_value",
				Help: "p-value of the district theft/arrest independence test",
			},
		),
		verificationState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crime_store_verification_ok",
				Help: "1 when the artifact matched the table on the last verification, 0 otherwise",
			},
		),
	}
}

func (m *PrometheusMetrics) RecordsRead(source string, n int) {
	m.recordsRead.WithLabelValues(source).Add(float64(n))
}

func (m *PrometheusMetrics) RecordsFiltered(n int) {
	m.recordsFiltered.Add(float64(n))
}

func (m *PrometheusMetrics) RowsLoaded(n int) {
	m.rowsLoaded.Add(float64(n))
}

func (m *PrometheusMetrics) ChartRendered(ok bool) {
	status := "success"
	if !ok {
		status = "failed"
	}
	m.chartsRendered.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) StageDuration(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) IndependenceTested(statistic, pValue float64) {
	m.chiSquaredStat.Set(statistic)
	m.chiSquaredPValue.Set(pValue)
}

func (m *PrometheusMetrics) VerificationCompleted(ok bool) {
	if ok {
		m.verificationState.Set(1)
		return
	}
	m.verificationState.Set(0)
}

// Gatherer exposes the private registry
func (m *PrometheusMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current metric values in the text exposition format
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
