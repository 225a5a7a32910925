package cache

import (
	"context"
	"sync"
	"time"

	"babilonia.local/internal/catalog"
	"babilonia.local/internal/platform/metrics"
)

type entry struct {
	products   []catalog.Product
	capturedAt time.Time
}

// MemoryStore keeps decoded listings in process memory, one slot per
// category key ("" is the unfiltered listing). The clock is injected so
// TTL behavior is deterministic in tests.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		slots: make(map[string]entry),
		ttl:   ttl,
		now:   now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]catalog.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.slots[key]
	if !ok {
		metrics.CacheOperations.WithLabelValues("listing", "miss").Inc()
		return nil, false
	}
	if m.now().Sub(e.capturedAt) >= m.ttl {
		delete(m.slots, key)
		metrics.CacheOperations.WithLabelValues("listing", "miss").Inc()
		return nil, false
	}
	metrics.CacheOperations.WithLabelValues("listing", "hit").Inc()
	return e.products, true
}

func (m *MemoryStore) Put(_ context.Context, key string, products []catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = entry{products: products, capturedAt: m.now()}
	metrics.CacheOperations.WithLabelValues("listing", "put").Inc()
}

func (m *MemoryStore) Invalidate(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots = make(map[string]entry)
	metrics.CacheOperations.WithLabelValues("listing", "invalidate").Inc()
}
