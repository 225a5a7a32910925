package test

import (
	"testing"
	"time"

	"babilonia.local/internal/platform/config"
)

func TestConfigLoad_UsesDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")
	t.Setenv("MEDIA_TIMEOUT", "")
	t.Setenv("MEDIA_MAX_RESULTS", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("ADMIN_USER", "")
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("KAFKA_ENABLED", "")

	cfg := config.Load()

	if cfg.Addr != ":5000" {
		t.Fatalf("Addr: got %q, want %q", cfg.Addr, ":5000")
	}
	if cfg.MediaCloudName != "drigawwbd" {
		t.Fatalf("MediaCloudName: got %q", cfg.MediaCloudName)
	}
	if cfg.MediaTimeout != 10*time.Second {
		t.Fatalf("MediaTimeout: got %v", cfg.MediaTimeout)
	}
	if cfg.MediaMaxResults != 500 {
		t.Fatalf("MediaMaxResults: got %d", cfg.MediaMaxResults)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("CacheTTL: got %v", cfg.CacheTTL)
	}
	if cfg.AdminUser != "admin" {
		t.Fatalf("AdminUser: got %q", cfg.AdminUser)
	}
	if cfg.RedisEnabled {
		t.Fatal("RedisEnabled: got true, want false")
	}
	if cfg.KafkaEnabled {
		t.Fatal("KafkaEnabled: got true, want false")
	}
}

func TestConfigLoad_ReadsEnv(t *testing.T) {
	t.Setenv("ADDR", ":18080")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "othercloud")
	t.Setenv("CLOUDINARY_API_KEY", "k")
	t.Setenv("CLOUDINARY_API_SECRET", "s")
	t.Setenv("MEDIA_TIMEOUT", "3s")
	t.Setenv("MEDIA_MAX_RESULTS", "25")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("ADMIN_USER", "dueno")
	t.Setenv("JWT_SECRET", "topsecret")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := config.Load()

	if cfg.Addr != ":18080" {
		t.Fatalf("Addr: got %q", cfg.Addr)
	}
	if cfg.MediaCloudName != "othercloud" || cfg.MediaAPIKey != "k" || cfg.MediaAPISecret != "s" {
		t.Fatalf("media credentials: got %q/%q/%q", cfg.MediaCloudName, cfg.MediaAPIKey, cfg.MediaAPISecret)
	}
	if cfg.MediaTimeout != 3*time.Second {
		t.Fatalf("MediaTimeout: got %v", cfg.MediaTimeout)
	}
	if cfg.MediaMaxResults != 25 {
		t.Fatalf("MediaMaxResults: got %d", cfg.MediaMaxResults)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("CacheTTL: got %v", cfg.CacheTTL)
	}
	if cfg.AdminUser != "dueno" {
		t.Fatalf("AdminUser: got %q", cfg.AdminUser)
	}
	if cfg.JWTSecret != "topsecret" {
		t.Fatalf("JWTSecret: got %q", cfg.JWTSecret)
	}
	if !cfg.RedisEnabled || cfg.RedisAddr != "redis:6379" {
		t.Fatalf("redis: got %v %q", cfg.RedisEnabled, cfg.RedisAddr)
	}
	if !cfg.KafkaEnabled || len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("kafka: got %v %v", cfg.KafkaEnabled, cfg.KafkaBrokers)
	}
}

func TestConfigLoad_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "pronto")
	t.Setenv("MEDIA_MAX_RESULTS", "-3")

	cfg := config.Load()

	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("CacheTTL: got %v, want default", cfg.CacheTTL)
	}
	if cfg.MediaMaxResults != 500 {
		t.Fatalf("MediaMaxResults: got %d, want default", cfg.MediaMaxResults)
	}
}
