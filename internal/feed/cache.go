package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// itemCache keeps one parsed feed around for a short TTL so repeated
// runs inside the TTL reuse the parse instead of refetching.
type itemCache struct {
	c *gocache.Cache
}

func newItemCache(ttl time.Duration) *itemCache {
	return &itemCache{c: gocache.New(ttl, 2*ttl)}
}

func (ic *itemCache) get(key string) ([]Item, bool) {
	if val, found := ic.c.Get(key); found {
		return val.([]Item), true
	}
	return nil, false
}

func (ic *itemCache) set(key string, items []Item) {
	ic.c.Set(key, items, gocache.DefaultExpiration)
}

// cacheKey generates a cache key from a feed URL.
func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "usdebt:v1:" + hex.EncodeToString(hash[:])
}
