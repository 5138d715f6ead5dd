package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "sync_total",
		Help:      "Count of follower sync iterations.",
	}, []string{"network", "status"})

	followerSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "sync_duration_seconds",
		Help:      "Duration of a follower sync iteration.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	followerSyncSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "sync_headers",
		Help:      "Number of headers inserted per sync iteration.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	followerOrphans = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "orphan_headers",
		Help:      "Headers waiting for their parent.",
	}, []string{"network"})
)

// Follower tracks metrics for the chain follower.
type Follower struct {
	network string
}

// NewFollower constructs a Follower with defaults.
func NewFollower(network string) *Follower {
	if network == "" {
		network = "unknown"
	}
	return &Follower{network: network}
}

// ObserveSync records one sync iteration that inserted headers headers.
func (m Follower) ObserveSync(err error, headers int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	followerSyncTotal.WithLabelValues(m.network, status).Inc()
	followerSyncDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
	followerSyncSize.WithLabelValues(m.network).
		Observe(float64(headers))
}

// SetOrphans publishes the size of the orphan pool.
func (m Follower) SetOrphans(n int) {
	followerOrphans.WithLabelValues(m.network).Set(float64(n))
}
