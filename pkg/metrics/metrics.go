package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by the storefront counters.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
)

// OrderMetrics records order submission and admin edit activity.
type OrderMetrics struct {
	submitted      *prometheus.CounterVec
	submitDuration *prometheus.HistogramVec
	idRetries      prometheus.Counter
	adminPatches   *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Order submissions by channel and outcome.",
	}, []string{"channel", "outcome"})
	submitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"channel"})
	idRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_number_retries_total",
		Help: "Order number allocations retried after a unique violation.",
	})
	adminPatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_patches_total",
		Help: "Admin partial updates by target and outcome.",
	}, []string{"target", "outcome"})
	reg.MustRegister(submitted, submitDuration, idRetries, adminPatches)
	return &OrderMetrics{
		submitted:      submitted,
		submitDuration: submitDuration,
		idRetries:      idRetries,
		adminPatches:   adminPatches,
	}
}

// ObserveSubmit records one submission attempt.
func (m *OrderMetrics) ObserveSubmit(channel, outcome string, duration time.Duration) {
	if m == nil || m.submitted == nil {
		return
	}
	channel = normalizeLabel(channel)
	m.submitted.WithLabelValues(channel, normalizeLabel(outcome)).Inc()
	m.submitDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// IncNumberRetry counts a retried order number allocation.
func (m *OrderMetrics) IncNumberRetry() {
	if m == nil || m.idRetries == nil {
		return
	}
	m.idRetries.Inc()
}

// IncAdminPatch counts one dispatched order or customer patch.
func (m *OrderMetrics) IncAdminPatch(target, outcome string) {
	if m == nil || m.adminPatches == nil {
		return
	}
	m.adminPatches.WithLabelValues(normalizeLabel(target), normalizeLabel(outcome)).Inc()
}

// OutboxMetrics records the publisher loop.
type OutboxMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
	batch     prometheus.Histogram
}

// NewOutboxMetrics registers the outbox publisher metrics.
func NewOutboxMetrics(reg prometheus.Registerer) *OutboxMetrics {
	if reg == nil {
		return &OutboxMetrics{}
	}
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_published_total",
		Help: "Outbox events published by event type.",
	}, []string{"event_type"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_publish_failures_total",
		Help: "Outbox publish failures by event type.",
	}, []string{"event_type"})
	batch := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "outbox_batch_size",
		Help:    "Rows fetched per publisher batch.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})
	reg.MustRegister(published, failed, batch)
	return &OutboxMetrics{published: published, failed: failed, batch: batch}
}

func (m *OutboxMetrics) IncPublished(eventType string) {
	if m == nil || m.published == nil {
		return
	}
	m.published.WithLabelValues(normalizeLabel(eventType)).Inc()
}

func (m *OutboxMetrics) IncFailed(eventType string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(eventType)).Inc()
}

func (m *OutboxMetrics) ObserveBatch(size int) {
	if m == nil || m.batch == nil {
		return
	}
	m.batch.Observe(float64(size))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

// JobMetrics records maintenance job runs.
type JobMetrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewJobMetrics registers the maintenance job metrics.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_job_runs_total",
		Help: "Maintenance job runs by job and outcome.",
	}, []string{"job", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maintenance_job_duration_seconds",
		Help:    "Maintenance job duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	reg.MustRegister(runs, duration)
	return &JobMetrics{runs: runs, duration: duration}
}

// ObserveRun records one job run.
func (m *JobMetrics) ObserveRun(job, outcome string, d time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(normalizeLabel(job), normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(d.Seconds())
}
