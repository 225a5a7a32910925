package cache

import (
	"time"

	"babilonia.local/internal/catalog"
	"babilonia.local/internal/platform/metrics"
	"github.com/dgraph-io/ristretto"
)

type notFoundSentinel struct{}

// ProductCache is a ristretto-backed point-read cache for single
// products, with negative caching so repeated lookups of unknown
// identifiers do not hammer the media directory.
type ProductCache struct {
	cache    *ristretto.Cache
	ttl      time.Duration
	emptyTTL time.Duration
}

func NewProductCache(maxItems, maxCost int64, ttl time.Duration) (*ProductCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxItems * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &ProductCache{
		cache:    cache,
		ttl:      ttl,
		emptyTTL: 10 * time.Second, // negative-cache TTL
	}, nil
}

// Get returns (product, found, negative). negative means the identifier
// was recently confirmed missing.
func (p *ProductCache) Get(id string) (catalog.Product, bool, bool) {
	v, ok := p.cache.Get(id)
	if !ok {
		metrics.CacheOperations.WithLabelValues("product", "miss").Inc()
		return catalog.Product{}, false, false
	}
	if _, neg := v.(notFoundSentinel); neg {
		metrics.CacheOperations.WithLabelValues("product", "hit_negative").Inc()
		return catalog.Product{}, true, true
	}
	metrics.CacheOperations.WithLabelValues("product", "hit").Inc()
	return v.(catalog.Product), true, false
}

func (p *ProductCache) Set(product catalog.Product) {
	// cost=1: bound by entry count, not size
	p.cache.SetWithTTL(product.ID, product, 1, p.ttl)
}

func (p *ProductCache) SetNotFound(id string) {
	p.cache.SetWithTTL(id, notFoundSentinel{}, 1, p.emptyTTL)
}

// Wait blocks until buffered writes have been applied.
func (p *ProductCache) Wait() {
	p.cache.Wait()
}

func (p *ProductCache) Del(id string) {
	p.cache.Del(id)
}

func (p *ProductCache) Clear() {
	p.cache.Clear()
}

func (p *ProductCache) Close() {
	p.cache.Close()
}
