package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// promMetrics bundles the Prometheus collectors for the HTTP surface and
// the aggregation pipeline.
type promMetrics struct {
	requestsTotal       *prometheus.CounterVec
	aggregationsTotal   prometheus.Counter
	aggregationFailures prometheus.Counter
	aggregationSeconds  prometheus.Histogram
	lastPostCount       prometheus.Gauge
}

func newPromMetrics(reg prometheus.Registerer) *promMetrics {
	factory := promauto.With(reg)
	return &promMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "brandboard_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		aggregationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "brandboard_aggregations_total",
			Help: "Content-performance aggregation runs.",
		}),
		aggregationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "brandboard_aggregation_failures_total",
			Help: "Aggregation runs that failed fetching the brand list.",
		}),
		aggregationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "brandboard_aggregation_duration_seconds",
			Help:    "Wall time of aggregation runs.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		lastPostCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "brandboard_last_post_count",
			Help: "Posts surviving the zero-signal filter in the last run.",
		}),
	}
}
