package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	expensesCreatedTotal      prometheus.Counter
	expenseAmount             prometheus.Histogram
	categoriesCreatedTotal    prometheus.Counter
	extractionRequests        *prometheus.CounterVec
	extractionDuration        prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		expensesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_created_total",
				Help: "Total number of expenses recorded",
			},
		),
		expenseAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expense_amount",
				Help:    "Recorded expense totals in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 6),
			},
		),
		categoriesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "categories_created_total",
				Help: "Total number of user categories created",
			},
		),
		extractionRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extraction_requests_total",
				Help: "Total number of AI extraction proxy requests",
			},
			[]string{"status"},
		),
		extractionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "extraction_request_duration_seconds",
				Help:    "AI extraction proxy round-trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "expense_created":
		m.expensesCreatedTotal.Inc()
	case "category_created":
		m.categoriesCreatedTotal.Inc()
	case "extraction_request":
		if status := tags["status"]; status != "" {
			m.extractionRequests.WithLabelValues(status).Inc()
		}
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "extraction_request":
		m.extractionDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "expense_amount":
		m.expenseAmount.Observe(value)
	}
}
