package test

import (
	"context"
	"os"
	"testing"
	"time"

	"babilonia.local/internal/catalog"
	catalogcache "babilonia.local/internal/catalog/cache"
	platformcache "babilonia.local/internal/platform/cache"
	"babilonia.local/internal/platform/ratelimit"
)

// These tests need a live redis; set REDIS_TEST_ADDR to run them.
func redisTestAddr(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	return addr
}

func TestRedisStore_PutGetInvalidate(t *testing.T) {
	client, err := platformcache.NewRedisClient(redisTestAddr(t), "", 0)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	store := catalogcache.NewRedisStore(client, time.Minute)
	ctx := context.Background()

	store.Invalidate(ctx)
	if _, ok := store.Get(ctx, ""); ok {
		t.Fatal("hit after invalidate")
	}

	products := []catalog.Product{
		{ID: "Home/hombres/zapatos-8999", Title: "Zapatos", Price: 89.99, Category: "hombres"},
	}
	store.Put(ctx, "", products)

	got, ok := store.Get(ctx, "")
	if !ok {
		t.Fatal("miss after Put")
	}
	if len(got) != 1 || got[0].ID != products[0].ID || got[0].Price != 89.99 {
		t.Fatalf("got %+v", got)
	}

	// category slots are separate keys
	if _, ok := store.Get(ctx, "hombres"); ok {
		t.Fatal("unexpected hit on category slot")
	}

	store.Invalidate(ctx)
	if _, ok := store.Get(ctx, ""); ok {
		t.Fatal("hit after second invalidate")
	}
}

func TestRedisLimiter_SlidingWindow(t *testing.T) {
	client, err := platformcache.NewRedisClient(redisTestAddr(t), "", 0)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	limiter := ratelimit.NewLimiter(client)
	ctx := context.Background()
	key := "rl:test:" + time.Now().Format("150405.000")

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, key, 3, time.Second, time.Now().Format("05.000000000"))
		if err != nil {
			t.Fatal(err)
		}
		if !allowed {
			t.Fatalf("request %d denied inside the limit", i+1)
		}
		time.Sleep(time.Millisecond)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, key, 3, time.Second, "overflow")
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("fourth request allowed over the limit")
	}
	if retryAfter <= 0 || retryAfter > time.Second {
		t.Fatalf("retryAfter = %v", retryAfter)
	}
}
