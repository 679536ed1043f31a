package services

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionProcessed *prometheus.CounterVec
	transactionDuration  *prometheus.HistogramVec
	transactionAmount    *prometheus.HistogramVec
	reportRequests       *prometheus.CounterVec
	reportDuration       prometheus.Histogram
	cacheOperations      *prometheus.CounterVec
	eventsPublished      *prometheus.CounterVec
	transactionsStored   prometheus.Gauge
}

// NewPrometheusMetrics registers the service collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on /metrics.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		transactionProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_processing_total",
				Help: "Total number of transaction store operations",
			},
			[]string{"operation", "status"},
		),
		transactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_processing_duration_milliseconds",
				Help:    "Transaction store operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		transactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_amount",
				Help:    "Amount of appended transactions in currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
			[]string{"type"},
		),
		reportRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monthly_report_requests_total",
				Help: "Total number of monthly report requests by source",
			},
			[]string{"source"},
		),
		reportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "monthly_report_duration_seconds",
				Help:    "Monthly report duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_cache_operations_total",
				Help: "Report cache operations by result",
			},
			[]string{"operation", "result"},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_events_published_total",
				Help: "Transaction events handed to the broker",
			},
			[]string{"status"},
		),
		transactionsStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "transactions_stored",
				Help: "Number of stored transactions, counted at startup and incremented on each write",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]
	reason := tags["reason"]

	switch name {
	case "transaction.processed.success":
		m.transactionProcessed.WithLabelValues(operation, "success").Inc()
	case "transaction.processed.failed":
		m.transactionProcessed.WithLabelValues(operation, "failed_"+reason).Inc()
	case "report.cache.hit":
		m.reportRequests.WithLabelValues("cache").Inc()
	case "report.computed":
		m.reportRequests.WithLabelValues("store").Inc()
	case "report.coalesced":
		m.reportRequests.WithLabelValues("coalesced").Inc()
	case "cache.operation":
		if operation != "" {
			m.cacheOperations.WithLabelValues(operation, tags["result"]).Inc()
		}
	case "event.published":
		m.eventsPublished.WithLabelValues("success").Inc()
	case "event.publish.failed":
		m.eventsPublished.WithLabelValues("failed").Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.append", "transaction.query", "transaction.seed":
		m.transactionDuration.WithLabelValues(strings.TrimPrefix(name, "transaction.")).Observe(float64(duration.Milliseconds()))
	case "report.monthly":
		m.reportDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "transaction.amount":
		if t := tags["type"]; t != "" {
			m.transactionAmount.WithLabelValues(t).Observe(value)
		}
	case "transactions.stored":
		m.transactionsStored.Set(value)
	case "transactions.stored.added":
		m.transactionsStored.Add(value)
	}
}

// NoopMetrics discards every measurement.
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string) {}

func (NoopMetrics) RecordProcessingTime(string, time.Duration) {}

func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
