package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// single calls are observed with a batch size of 1
var (
	nodeCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_rpc_requests_total",
			Help: "Node round trips by method",
		},
		[]string{"method"},
	)

	nodeCallErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_rpc_errors_total",
			Help: "Failed node calls and batch elements by method and error class",
		},
		[]string{"method", "error_type"},
	)

	nodeCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainfirehose_rpc_request_duration_seconds",
			Help:    "Node round-trip latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	batchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainfirehose_rpc_batch_size",
			Help:    "Elements per node round trip",
			Buckets: prometheus.ExponentialBuckets(1, 2, 9), //nolint:mnd
		},
		[]string{"method"},
	)

	nodeCallRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_rpc_retries_total",
			Help: "Node calls repeated after a transient failure",
		},
		[]string{"method"},
	)

	hotPolls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_rpc_hot_polls_total",
			Help: "Chain tip polls",
		},
	)

	discardedPolls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_rpc_discarded_polls_total",
			Help: "Chain tip polls dropped because the fetched blocks did not link up",
		},
	)
)

// observeCall records one round trip of size elements that started at start.
func observeCall(method string, size int, start time.Time, err error) {
	nodeCalls.WithLabelValues(method).Inc()
	nodeCallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	batchSize.WithLabelValues(method).Observe(float64(size))

	if err != nil {
		observeError(method, err)
	}
}

func observeError(method string, err error) {
	nodeCallErrors.WithLabelValues(method, errorType(err)).Inc()
}
