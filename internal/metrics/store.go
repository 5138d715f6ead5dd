package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of key/value store operations.",
	}, []string{"operation", "engine", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of key/value store operations.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"operation", "engine", "status"})
)

// Store tracks metrics for one key/value store engine.
type Store struct {
	engine string
}

// NewStore constructs a Store collector labelled with engine.
func NewStore(engine string) *Store {
	if engine == "" {
		engine = "unknown"
	}
	return &Store{engine: engine}
}

// Observe records one store operation.
func (m Store) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	storeOperationsTotal.WithLabelValues(operation, m.engine, status).Inc()
	storeOperationDuration.WithLabelValues(operation, m.engine, status).Observe(time.Since(started).Seconds())
}
