package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	TrainingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stocksense",
			Subsystem: "engine",
			Name:      "training_seconds",
			Help:      "Time spent computing features and training the forest per symbol",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"stage"},
	)

	FanoutSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stocksense",
			Subsystem: "engine",
			Name:      "fanout_size",
			Help:      "Number of symbols per fan-out, split by outcome",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		},
		[]string{"outcome"},
	)

	PoolWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stocksense",
			Subsystem: "engine",
			Name:      "pool_wait_seconds",
			Help:      "Time jobs waited for a worker slot",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)
)

// Register adds the engine collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(TrainingDuration, FanoutSize, PoolWait)
	})
}
