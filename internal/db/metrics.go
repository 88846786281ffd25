package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	maintenancePasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_maintenance_passes_total",
			Help: "Archive maintenance passes by outcome",
		},
		[]string{"outcome"},
	)

	maintenanceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainfirehose_maintenance_duration_seconds",
			Help:    "Time a maintenance pass held the archive exclusively",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8), //nolint:mnd
		},
	)

	maintenanceLastPass = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_maintenance_last_pass_timestamp",
			Help: "Unix timestamp of the last maintenance pass",
		},
	)

	reclaimedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_maintenance_reclaimed_bytes_total",
			Help: "Bytes released by maintenance passes",
		},
	)

	walCheckpointedFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainfirehose_wal_checkpointed_frames_total",
			Help: "WAL frames moved into the database file, by checkpoint mode",
		},
		[]string{"mode"},
	)

	vacuumRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_vacuum_total",
			Help: "Total number of VACUUM operations",
		},
	)

	archiveFileSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_archive_file_size_bytes",
			Help: "Size of the archive database with its WAL and shared-memory files",
		},
	)
)

// recordPass publishes the outcome of one maintenance pass. before and after are the
// archive's on-disk sizes around the pass.
func recordPass(err error, duration time.Duration, before, after int64) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	maintenancePasses.WithLabelValues(outcome).Inc()
	maintenanceDuration.Observe(duration.Seconds())
	maintenanceLastPass.SetToCurrentTime()
	archiveFileSize.Set(float64(after))

	if before > after {
		reclaimedBytes.Add(float64(before - after))
	}
}

func walCheckpointed(mode string, frames int) {
	walCheckpointedFrames.WithLabelValues(mode).Add(float64(frames))
}

func vacuumed() {
	vacuumRuns.Inc()
}
