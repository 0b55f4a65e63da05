package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache keeps encoded rank responses keyed by request digest.
type ResponseCache struct {
	cache *gocache.Cache
}

// NewResponseCache returns nil when ttl is not positive, which disables
// caching.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		return nil
	}
	return &ResponseCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *ResponseCache) Get(key string) (*RankResponse, bool) {
	if c == nil {
		return nil, false
	}
	if val, found := c.cache.Get(key); found {
		return val.(*RankResponse), true
	}
	return nil, false
}

func (c *ResponseCache) Set(key string, resp *RankResponse) {
	if c == nil {
		return
	}
	c.cache.SetDefault(key, resp)
}

func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}

// CacheKey digests the fields that determine a ranking.
func CacheKey(documents []string, sparse float64, topK int) string {
	payload, _ := json.Marshal(struct {
		Documents []string `json:"d"`
		Sparse    float64  `json:"s"`
		TopK      int      `json:"k"`
	}{documents, sparse, topK})
	hash := sha256.Sum256(payload)
	return "termrank:v1:" + hex.EncodeToString(hash[:])
}
