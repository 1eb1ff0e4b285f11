package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ytget/clip-downloader/internal/model"
)

// MetricsPath is the route serving the Prometheus exposition
const MetricsPath = "/metrics"

// Metrics holds Prometheus counters and gauges for clip submissions.
type Metrics struct {
	registry          *prometheus.Registry
	submissionsTotal  *prometheus.CounterVec
	bytesSavedTotal   prometheus.Counter
	processing        prometheus.Gauge
	submissionSeconds prometheus.Histogram
}

// New creates and registers Prometheus metrics for the downloader.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	submissionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clip_submissions_total",
		Help: "Total number of finished clip submissions by outcome",
	}, []string{"outcome"})
	bytesSavedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clip_bytes_saved_total",
		Help: "Total number of media bytes written to disk",
	})
	processing := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "clip_processing",
		Help: "1 while a submission is in flight, 0 otherwise",
	})
	submissionSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "clip_submission_duration_seconds",
		Help:    "Wall time of finished submissions",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})

	registry.MustRegister(
		submissionsTotal,
		bytesSavedTotal,
		processing,
		submissionSeconds,
	)

	// Pre-create outcome series so they are exported at zero
	for _, o := range model.AllOutcomes() {
		submissionsTotal.WithLabelValues(o.String())
	}

	return &Metrics{
		registry:          registry,
		submissionsTotal:  submissionsTotal,
		bytesSavedTotal:   bytesSavedTotal,
		processing:        processing,
		submissionSeconds: submissionSeconds,
	}
}

// SetProcessing sets the processing gauge.
func (m *Metrics) SetProcessing(on bool) {
	if on {
		m.processing.Set(1)
		return
	}
	m.processing.Set(0)
}

// ObserveTask records a finished task.
func (m *Metrics) ObserveTask(task *model.ClipTask) {
	m.submissionsTotal.WithLabelValues(task.Outcome.String()).Inc()
	if task.Outcome == model.OutcomeSuccess && task.BytesDone > 0 {
		m.bytesSavedTotal.Add(float64(task.BytesDone))
	}
	if d := task.Duration(); d > 0 {
		m.submissionSeconds.Observe(d.Seconds())
	}
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewRouter returns a router exposing the metrics endpoint.
func NewRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Get(MetricsPath, m.Handler().ServeHTTP)
	return r
}
