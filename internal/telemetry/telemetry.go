// Package telemetry provides OpenTelemetry instrumentation for the
// complaint classification service. It exports Prometheus metrics and
// provides tracing capabilities.
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

const serviceName = "complaint-classifier"

// Metrics holds all service Prometheus metrics.
type Metrics struct {
	// Intake metrics
	SubmissionsTotal  *prometheus.CounterVec
	DuplicatesTotal   prometheus.Counter
	SubmissionErrors  *prometheus.CounterVec
	SubmissionLatency prometheus.Histogram

	// Routing metrics
	RoutedTotal      *prometheus.CounterVec
	FallbackErrors   *prometheus.CounterVec
	ClassifyDuration *prometheus.HistogramVec
	SentimentTotal   *prometheus.CounterVec

	// Review metrics
	ReviewTransitions *prometheus.CounterVec
	ComplaintsDeleted prometheus.Counter
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics. Call once
// at process start: metrics register against the default registry.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initIntakeMetrics(m)
	initRoutingMetrics(m)
	initReviewMetrics(m)
	return m
}

func initIntakeMetrics(m *Metrics) {
	m.SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "complaints_submissions_total",
		Help: "Total complaint submissions by outcome (accepted, duplicate, empty, error)",
	}, []string{"outcome"})

	m.DuplicatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "complaints_duplicates_total",
		Help: "Submissions rejected by the duplicate guard",
	})

	m.SubmissionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "complaints_submission_errors_total",
		Help: "Submissions that failed at the persistence boundary",
	}, []string{"stage"})

	m.SubmissionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "complaints_submission_duration_seconds",
		Help:    "End-to-end submission time (classify + guard + persist)",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	})
}

func initRoutingMetrics(m *Metrics) {
	m.RoutedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "complaints_routed_total",
		Help: "Complaints routed by tier or model fallback",
	}, []string{"tier"})

	m.FallbackErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "complaints_fallback_errors_total",
		Help: "Model fallback failures by reason (fail-open to Others)",
	}, []string{"reason"})

	m.ClassifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "complaints_classify_duration_seconds",
		Help:    "Time to classify a single complaint",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	}, []string{"department"})

	m.SentimentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "complaints_sentiment_total",
		Help: "Classified complaints by sentiment label",
	}, []string{"sentiment"})
}

func initReviewMetrics(m *Metrics) {
	m.ReviewTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "complaints_review_transitions_total",
		Help: "Review status updates by target status",
	}, []string{"status"})

	m.ComplaintsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "complaints_deleted_total",
		Help: "Complaints permanently deleted",
	})
}

// RecordSubmission records the outcome of one submission attempt.
func (p *Provider) RecordSubmission(outcome string, duration time.Duration) {
	p.Metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	p.Metrics.SubmissionLatency.Observe(duration.Seconds())
}

// RecordDuplicate counts a guard rejection.
func (p *Provider) RecordDuplicate() {
	p.Metrics.DuplicatesTotal.Inc()
}

// RecordSubmissionError counts a persistence-boundary failure.
func (p *Provider) RecordSubmissionError(stage string) {
	p.Metrics.SubmissionErrors.WithLabelValues(stage).Inc()
}

// RecordRoute counts a routing decision by tier (or model fallback).
func (p *Provider) RecordRoute(tier string) {
	p.Metrics.RoutedTotal.WithLabelValues(tier).Inc()
}

// RecordFallbackError counts a model-fallback failure by reason.
func (p *Provider) RecordFallbackError(reason string) {
	p.Metrics.FallbackErrors.WithLabelValues(reason).Inc()
}

// RecordClassification records a completed classification.
func (p *Provider) RecordClassification(department string, duration time.Duration) {
	p.Metrics.ClassifyDuration.WithLabelValues(department).Observe(duration.Seconds())
}

// RecordSentiment counts a classified sentiment label.
func (p *Provider) RecordSentiment(sentiment string) {
	p.Metrics.SentimentTotal.WithLabelValues(sentiment).Inc()
}

// RecordReviewTransition counts a review status update.
func (p *Provider) RecordReviewTransition(status string) {
	p.Metrics.ReviewTransitions.WithLabelValues(status).Inc()
}

// RecordDelete counts a permanent deletion.
func (p *Provider) RecordDelete() {
	p.Metrics.ComplaintsDeleted.Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
