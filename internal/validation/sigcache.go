package validation

import "github.com/goodnatureofminers/utxonode/internal/script"

// ObservedSignatureCache records hits and misses of a script.SignatureCache.
type ObservedSignatureCache struct {
	cache   script.SignatureCache
	metrics Metrics
}

// NewObservedSignatureCache wraps cache.
func NewObservedSignatureCache(cache script.SignatureCache, metrics Metrics) *ObservedSignatureCache {
	return &ObservedSignatureCache{cache: cache, metrics: metrics}
}

func (c *ObservedSignatureCache) Exists(digest, signature, publicKey []byte) bool {
	hit := c.cache.Exists(digest, signature, publicKey)
	c.metrics.ObserveSignatureCache(hit)
	return hit
}

func (c *ObservedSignatureCache) Add(digest, signature, publicKey []byte) {
	c.cache.Add(digest, signature, publicKey)
}
