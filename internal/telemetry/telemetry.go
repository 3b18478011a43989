// Package telemetry provides OpenTelemetry instrumentation for the review
// mining service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "reviewminer"

// Metrics holds all review miner Prometheus metrics
type Metrics struct {
	// Enrichment metrics
	ReviewsEnriched    prometheus.Counter
	EnrichmentDuration prometheus.Histogram
	BatchSize          prometheus.Histogram
	BatchDuration      prometheus.Histogram

	// Feature signal distribution
	SentimentLabels   *prometheus.CounterVec
	DominantEmotions  *prometheus.CounterVec
	PolarityDisagreed prometheus.Counter
	DegradedRecords   *prometheus.CounterVec
	SentimentDegraded prometheus.Counter

	// Worker pool metrics
	ActiveWorkers prometheus.Gauge

	// Run metrics
	MiningRuns     *prometheus.CounterVec
	ReportDuration prometheus.Histogram
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initEnrichmentMetrics(m)
	initFeatureMetrics(m)
	initRunMetrics(m)
	return m
}

func initEnrichmentMetrics(m *Metrics) {
	m.ReviewsEnriched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewminer_reviews_enriched_total",
		Help: "Total review records enriched",
	})

	m.EnrichmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reviewminer_enrichment_duration_seconds",
		Help:    "Time to enrich a single review",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reviewminer_batch_size",
		Help:    "Distribution of mining batch sizes",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	m.BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reviewminer_batch_duration_seconds",
		Help:    "Time to enrich a full batch",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reviewminer_active_workers",
		Help: "Workers currently enriching reviews",
	})
}

func initFeatureMetrics(m *Metrics) {
	m.SentimentLabels = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewminer_sentiment_labels_total",
		Help: "Reviews by sentiment label (positive, negative, neutral)",
	}, []string{"label"})

	m.DominantEmotions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewminer_dominant_emotions_total",
		Help: "Reviews by dominant emotion category",
	}, []string{"emotion"})

	m.PolarityDisagreed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewminer_polarity_disagreements_total",
		Help: "Reviews whose star rating contradicted the text sentiment",
	})

	m.DegradedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewminer_degraded_records_total",
		Help: "Input records with missing or unparseable fields",
	}, []string{"field"})

	m.SentimentDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewminer_sentiment_degraded_total",
		Help: "Reviews scored with neutral defaults because the intensity analyzer was unavailable",
	})
}

func initRunMetrics(m *Metrics) {
	m.MiningRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewminer_mining_runs_total",
		Help: "Completed mining runs by outcome",
	}, []string{"status"})

	m.ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reviewminer_report_duration_seconds",
		Help:    "Time to aggregate an insights report",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
	})
}

// RecordEnrichment records a single enriched review and how the text scored.
func (p *Provider) RecordEnrichment(ctx context.Context, compound float64, disagreed bool, duration time.Duration) {
	p.Metrics.ReviewsEnriched.Inc()
	p.Metrics.EnrichmentDuration.Observe(duration.Seconds())
	p.Metrics.SentimentLabels.WithLabelValues(sentimentLabel(compound)).Inc()
	if disagreed {
		p.Metrics.PolarityDisagreed.Inc()
	}
}

// RecordDominantEmotion increments the dominant emotion counter.
func (p *Provider) RecordDominantEmotion(ctx context.Context, emotion string) {
	if emotion == "" {
		emotion = "neutral"
	}
	p.Metrics.DominantEmotions.WithLabelValues(emotion).Inc()
}

// RecordDegradedField records an input record field that fell back to its
// neutral default.
func (p *Provider) RecordDegradedField(ctx context.Context, field string) {
	p.Metrics.DegradedRecords.WithLabelValues(field).Inc()
}

// RecordSentimentDegraded records a review scored without the analyzer.
func (p *Provider) RecordSentimentDegraded(ctx context.Context) {
	p.Metrics.SentimentDegraded.Inc()
}

// RecordBatch records the size and duration of a processed batch.
func (p *Provider) RecordBatch(ctx context.Context, size int, duration time.Duration) {
	p.Metrics.BatchSize.Observe(float64(size))
	p.Metrics.BatchDuration.Observe(duration.Seconds())
}

// RecordMiningRun records a completed mining run.
func (p *Provider) RecordMiningRun(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	p.Metrics.MiningRuns.WithLabelValues(status).Inc()
}

// RecordReportDuration records the time spent aggregating a report.
func (p *Provider) RecordReportDuration(ctx context.Context, duration time.Duration) {
	p.Metrics.ReportDuration.Observe(duration.Seconds())
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// sentimentLabel buckets a compound score into the coarse label used for
// the distribution counter.
func sentimentLabel(compound float64) string {
	switch {
	case compound >= 0.05:
		return "positive"
	case compound <= -0.05:
		return "negative"
	default:
		return "neutral"
	}
}
