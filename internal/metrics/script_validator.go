package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validatorBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "script_validator",
		Name:      "blocks_total",
		Help:      "Count of blocks whose scripts were validated.",
	}, []string{"network", "status"})
	validatorBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "script_validator",
		Name:      "block_duration_seconds",
		Help:      "Duration of validating the scripts of one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	validatorInputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "script_validator",
		Name:      "inputs_total",
		Help:      "Count of inputs evaluated.",
	}, []string{"network"})
	validatorSignatureCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "script_validator",
		Name:      "signature_cache_lookups_total",
		Help:      "Count of signature cache lookups by result.",
	}, []string{"network", "result"})
)

// ScriptValidator tracks metrics for block script validation.
type ScriptValidator struct {
	network string
}

// NewScriptValidator constructs a ScriptValidator collector.
func NewScriptValidator(network string) *ScriptValidator {
	if network == "" {
		network = "unknown"
	}
	return &ScriptValidator{network: network}
}

// ObserveBlock records the validation of a block with inputs evaluated inputs.
func (m ScriptValidator) ObserveBlock(err error, inputs int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	validatorBlocksTotal.WithLabelValues(m.network, status).Inc()
	validatorBlockDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	validatorInputsTotal.WithLabelValues(m.network).Add(float64(inputs))
}

// ObserveSignatureCache records one cache lookup.
func (m ScriptValidator) ObserveSignatureCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	validatorSignatureCacheTotal.WithLabelValues(m.network, result).Inc()
}
