package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockchainInsertTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "blockchain",
		Name:      "insert_block_total",
		Help:      "Count of block insertions by outcome.",
	}, []string{"network", "outcome", "status"})
	blockchainInsertDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "blockchain",
		Name:      "insert_block_duration_seconds",
		Help:      "Duration of block insertions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	blockchainRenumberDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "blockchain",
		Name:      "renumber_duration_seconds",
		Help:      "Duration of nested-set renumbering.",
		Buckets:   prometheus.ExponentialBuckets(.00001, 4, 10),
	}, []string{"network"})
	blockchainSegments = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "blockchain",
		Name:      "segments",
		Help:      "Number of segments in the forest.",
	}, []string{"network"})
	blockchainHeadHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "blockchain",
		Name:      "head_height",
		Help:      "Height of the best known block.",
	}, []string{"network"})
)

// Blockchain tracks metrics of the segment model.
type Blockchain struct {
	network string
}

// NewBlockchain constructs a Blockchain collector.
func NewBlockchain(network string) *Blockchain {
	if network == "" {
		network = "unknown"
	}
	return &Blockchain{network: network}
}

// ObserveInsert records one insertion. outcome is genesis, extend, fork or duplicate.
func (m Blockchain) ObserveInsert(outcome string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
		outcome = "rejected"
	}
	blockchainInsertTotal.WithLabelValues(m.network, outcome, status).Inc()
	blockchainInsertDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveRenumber records a full forest renumber over segments segments.
func (m Blockchain) ObserveRenumber(segments int, started time.Time) {
	blockchainRenumberDuration.WithLabelValues(m.network).Observe(time.Since(started).Seconds())
	blockchainSegments.WithLabelValues(m.network).Set(float64(segments))
}

// SetHeadHeight publishes the height of the current best block.
func (m Blockchain) SetHeadHeight(height int64) {
	blockchainHeadHeight.WithLabelValues(m.network).Set(float64(height))
}
