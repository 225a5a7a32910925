package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"babilonia.local/internal/catalog"
	"babilonia.local/internal/platform/metrics"
	"github.com/redis/go-redis/v9"
)

const listingKeyPrefix = "catalog:listing:"

// RedisStore is the multi-instance variant of the listing cache: one
// JSON blob per category key with a redis-side TTL. Same best-effort
// contract as MemoryStore — any redis or codec failure is a miss.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]catalog.Product, bool) {
	opCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()

	raw, err := r.client.Get(opCtx, listingKeyPrefix+key).Bytes()
	if err == redis.Nil {
		metrics.CacheOperations.WithLabelValues("listing", "miss").Inc()
		return nil, false
	}
	if err != nil {
		slog.Error("listing cache read failed", "key", key, "err", err)
		metrics.CacheOperations.WithLabelValues("listing", "miss").Inc()
		return nil, false
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		slog.Error("listing cache entry corrupt", "key", key, "err", err)
		metrics.CacheOperations.WithLabelValues("listing", "miss").Inc()
		return nil, false
	}
	metrics.CacheOperations.WithLabelValues("listing", "hit").Inc()
	return products, true
}

func (r *RedisStore) Put(ctx context.Context, key string, products []catalog.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		slog.Error("listing cache marshal failed", "key", key, "err", err)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	if err := r.client.Set(opCtx, listingKeyPrefix+key, raw, r.ttl).Err(); err != nil {
		slog.Error("listing cache write failed", "key", key, "err", err)
		return
	}
	metrics.CacheOperations.WithLabelValues("listing", "put").Inc()
}

func (r *RedisStore) Invalidate(ctx context.Context) {
	// the key space is closed: unfiltered plus the fixed category set
	keys := []string{listingKeyPrefix}
	for _, c := range catalog.Categories {
		keys = append(keys, listingKeyPrefix+c)
	}

	opCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	if err := r.client.Del(opCtx, keys...).Err(); err != nil {
		slog.Error("listing cache invalidate failed", "err", err)
		return
	}
	metrics.CacheOperations.WithLabelValues("listing", "invalidate").Inc()
}
