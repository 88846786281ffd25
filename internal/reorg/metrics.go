package reorg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reorgsDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_reorgs_detected_total",
			Help: "Total number of chain reorganizations detected in the hot tail",
		},
	)

	reorgDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainfirehose_reorg_depth_blocks",
			Help:    "Depth of chain reorganizations in blocks",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)

	reorgLastDetected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_reorg_last_detected_timestamp",
			Help: "Unix timestamp of last reorg detection",
		},
	)

	reorgsTooDeep = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainfirehose_reorgs_too_deep_total",
			Help: "Reorgs that replaced every tracked block, ending the live stream",
		},
	)

	reorgFromBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_reorg_from_block",
			Help: "First block replaced by the most recent reorg",
		},
	)

	trackedBlocks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainfirehose_chain_tracker_window_blocks",
			Help: "Number of unfinalized blocks currently tracked",
		},
	)
)

// rewound records a fork that replaced depth tracked blocks starting at fromBlock.
func rewound(depth, fromBlock uint64, window int) {
	reorgsDetected.Inc()
	reorgDepth.Observe(float64(depth))
	reorgLastDetected.SetToCurrentTime()
	reorgFromBlock.Set(float64(fromBlock))
	trackedBlocks.Set(float64(window))
}
