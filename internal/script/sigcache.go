package script

import (
	"crypto/sha256"

	"github.com/VictoriaMetrics/fastcache"
)

var present = []byte{1}

// FastSignatureCache is a SignatureCache backed by a fixed-size fastcache. Entries are keyed by
// the SHA-256 of digest, signature and public key, so memory use does not depend on key sizes.
type FastSignatureCache struct {
	cache *fastcache.Cache
}

// NewSignatureCache returns a cache holding at most maxBytes of entries.
func NewSignatureCache(maxBytes int) *FastSignatureCache {
	return &FastSignatureCache{cache: fastcache.New(maxBytes)}
}

func (c *FastSignatureCache) Exists(digest, signature, publicKey []byte) bool {
	return c.cache.Has(signatureCacheKey(digest, signature, publicKey))
}

func (c *FastSignatureCache) Add(digest, signature, publicKey []byte) {
	c.cache.Set(signatureCacheKey(digest, signature, publicKey), present)
}

// Reset drops every entry.
func (c *FastSignatureCache) Reset() {
	c.cache.Reset()
}

func signatureCacheKey(digest, signature, publicKey []byte) []byte {
	h := sha256.New()
	h.Write(digest)
	h.Write([]byte{byte(len(signature))})
	h.Write(signature)
	h.Write(publicKey)
	return h.Sum(nil)
}
