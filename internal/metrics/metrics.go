package metrics

import (
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"db", "operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainfirehose_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"db", "operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"db", "error_type"},
	)

	// Stream metrics
	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_active_streams",
			Help: "Number of block streams currently being served",
		},
	)

	StreamResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_stream_responses_total",
			Help: "Total number of stream responses emitted by phase and fork step",
		},
		[]string{"phase", "step"},
	)

	StreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_stream_errors_total",
			Help: "Total number of streams terminated by an error, by phase",
		},
		[]string{"phase"},
	)

	ConversionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_conversion_failures_total",
			Help: "Total number of raw blocks that failed canonical conversion",
		},
	)

	SingleBlockLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_single_block_lookups_total",
			Help: "Total number of single block lookups by reference kind and outcome",
		},
		[]string{"reference", "outcome"},
	)

	// API metrics
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_api_requests_total",
			Help: "Total number of HTTP API requests by route and status code",
		},
		[]string{"route", "status"},
	)

	APIRequestTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainfirehose_api_request_duration_seconds",
			Help:    "Duration of HTTP API requests by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// Archive metrics
	ArchivedHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_archived_height",
			Help: "Highest block number stored in the archive",
		},
	)

	BlocksIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_blocks_ingested_total",
			Help: "Total number of finalized blocks copied into the archive",
		},
	)

	BlocksPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_blocks_pruned_total",
			Help: "Total number of blocks removed by the retention policy",
		},
	)

	IngestBatchTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainfirehose_ingest_batch_duration_seconds",
			Help:    "Time taken to fetch and store one batch of finalized blocks",
			Buckets: prometheus.DefBuckets,
		},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainfirehose_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainfirehose_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func DBQueryInc(db string, operation string) {
	dbQueries.WithLabelValues(db, operation).Inc()
}

func DBQueryDuration(db string, operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(db, operation).Observe(duration.Seconds())
}

func DBErrorsInc(db string, errorType string) {
	dbErrors.WithLabelValues(db, errorType).Inc()
}

func StreamResponseInc(phase string, step string) {
	StreamResponses.WithLabelValues(phase, step).Inc()
}

func StreamErrorInc(phase string) {
	StreamErrors.WithLabelValues(phase).Inc()
}

func SingleBlockLookupInc(reference string, outcome string) {
	SingleBlockLookups.WithLabelValues(reference, outcome).Inc()
}

func APIRequestLog(route string, status int, duration time.Duration) {
	APIRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	APIRequestTime.WithLabelValues(route).Observe(duration.Seconds())
}

func ArchivedHeightSet(height uint64) {
	ArchivedHeight.Set(float64(height))
}

func BlocksIngestedInc(count int) {
	BlocksIngested.Add(float64(count))
}

func BlocksPrunedInc(count int64) {
	BlocksPruned.Add(float64(count))
}

func IngestBatchTimeLog(duration time.Duration) {
	IngestBatchTime.Observe(duration.Seconds())
}

func ErrorsInc(component string, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

// components holds the last reported health of every component, for the /health endpoint.
var components = struct {
	sync.Mutex
	healthy map[string]bool
}{healthy: make(map[string]bool)}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)

	components.Lock()
	components.healthy[component] = healthy
	components.Unlock()
}

// UnhealthyComponents returns the sorted names of components whose last report was unhealthy.
func UnhealthyComponents() []string {
	components.Lock()
	defer components.Unlock()

	var out []string
	for name, healthy := range components.healthy {
		if !healthy {
			out = append(out, name)
		}
	}
	slices.Sort(out)

	return out
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
