package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOrderMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)
	m.ObserveSubmit("checkout", OutcomeSuccess, 120*time.Millisecond)
	m.ObserveSubmit("checkout", OutcomeRejected, 5*time.Millisecond)
	m.IncNumberRetry()
	m.IncAdminPatch("order", OutcomeSuccess)
	m.IncAdminPatch("", OutcomeFailure)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "orders_submitted_total", map[string]string{"channel": "checkout", "outcome": OutcomeSuccess}); err != nil {
		t.Fatalf("fetch submitted: %v", err)
	} else if got != 1 {
		t.Fatalf("expected submitted=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "admin_patches_total", map[string]string{"target": "unknown", "outcome": OutcomeFailure}); err != nil {
		t.Fatalf("fetch patches: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown target failure=1, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "order_submit_duration_seconds", map[string]string{"channel": "checkout"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
	if mf := findMetricFamily(mfs, "order_number_retries_total"); mf == nil || mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatal("expected one order number retry")
	}
}

func TestOutboxMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOutboxMetrics(reg)
	m.IncPublished("order_created")
	m.IncPublished("order_created")
	m.IncFailed("review_submitted")
	m.ObserveBatch(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_published_total", map[string]string{"event_type": "order_created"}); err != nil || got != 2 {
		t.Fatalf("expected published=2, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_publish_failures_total", map[string]string{"event_type": "review_submitted"}); err != nil || got != 1 {
		t.Fatalf("expected failed=1, got %f err=%v", got, err)
	}
}

func TestJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewJobMetrics(reg)
	m.ObserveRun("outbox-retention", OutcomeSuccess, 20*time.Millisecond)
	m.ObserveRun("outbox-retention", OutcomeFailure, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "maintenance_job_runs_total", map[string]string{"job": "outbox-retention", "outcome": OutcomeSuccess}); err != nil || got != 1 {
		t.Fatalf("expected one success, got %f err=%v", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "maintenance_job_duration_seconds", map[string]string{"job": "outbox-retention"}); err != nil || got <= 0 {
		t.Fatalf("expected duration recorded, got %f err=%v", got, err)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	orders := NewOrderMetrics(nil)
	orders.ObserveSubmit("api", OutcomeSuccess, time.Second)
	orders.IncNumberRetry()
	orders.IncAdminPatch("order", OutcomeSuccess)

	var outbox *OutboxMetrics
	outbox.IncPublished("x")
	outbox.ObserveBatch(1)

	NewJobMetrics(nil).ObserveRun("job", OutcomeSuccess, time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
