package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration

	// logging
	LogLevel    slog.Level
	LogFormat   string
	ServiceName string

	PprofEnabled bool
	AdminAddr    string

	// media directory (Cloudinary admin API)
	MediaCloudName  string
	MediaAPIKey     string
	MediaAPISecret  string
	MediaTimeout    time.Duration // hard bound on every gateway call
	MediaMaxResults int

	// catalog cache
	CacheTTL time.Duration

	// admin auth
	JWTSecret         string // HS256 signing key
	JWTIssuer         string
	JWTTTL            time.Duration
	AdminUser         string
	AdminPasswordHash string // bcrypt, produce with cmd/tools/hashpass

	OtlpGrpcEndpoint string
	OtlpServiceName  string
	TracingEnabled   bool

	// Redis (listing cache + rate limiter)
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RateLimit
	RateLimitEnabled bool

	// Kafka (audit events)
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

func Load() Config {
	cfg := Config{
		Addr:              ":5000",
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,

		LogLevel:    slog.LevelInfo,
		LogFormat:   "json",
		ServiceName: "babilonia-api",

		PprofEnabled: false,
		AdminAddr:    "127.0.0.1:6060",

		MediaCloudName:  "drigawwbd",
		MediaTimeout:    10 * time.Second,
		MediaMaxResults: 500,

		CacheTTL: 5 * time.Minute,

		JWTTTL:    12 * time.Hour,
		JWTIssuer: "babilonia-api",
		AdminUser: "admin",

		OtlpGrpcEndpoint: "127.0.0.1:4317",
		OtlpServiceName:  "babilonia-api",
		TracingEnabled:   false,

		RedisEnabled:  false,
		RedisAddr:     "localhost:6379",
		RedisPassword: "",
		RedisDB:       0,

		RateLimitEnabled: false,

		KafkaEnabled: false,
		KafkaBrokers: []string{"localhost:9092"},
		KafkaTopic:   "catalog-audit",
	}

	_ = godotenv.Load(".env")

	if v, ok := os.LookupEnv("ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("IDLE_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.IdleTimeout = d
		}
	}
	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	if v, ok := os.LookupEnv("READ_HEADER_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadHeaderTimeout = d
		}
	}
	if v, ok := os.LookupEnv("READ_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = d
		}
	}
	if v, ok := os.LookupEnv("WRITE_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = d
		}
	}

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		switch strings.ToLower(v) {
		case "debug":
			cfg.LogLevel = slog.LevelDebug
		case "info":
			cfg.LogLevel = slog.LevelInfo
		case "warn", "warning":
			cfg.LogLevel = slog.LevelWarn
		case "error":
			cfg.LogLevel = slog.LevelError
		default:
			cfg.LogLevel = slog.LevelInfo
		}
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv("SERVICE_NAME"); ok && v != "" {
		cfg.ServiceName = v
	}

	if v, ok := os.LookupEnv("PPROF_ENABLED"); ok && v != "" {
		cfg.PprofEnabled = strings.ToLower(v) == "true"
	}
	if v, ok := os.LookupEnv("ADMIN_ADDR"); ok && v != "" {
		cfg.AdminAddr = v
	}

	if v, ok := os.LookupEnv("CLOUDINARY_CLOUD_NAME"); ok && v != "" {
		cfg.MediaCloudName = v
	}
	if v, ok := os.LookupEnv("CLOUDINARY_API_KEY"); ok && v != "" {
		cfg.MediaAPIKey = v
	}
	if v, ok := os.LookupEnv("CLOUDINARY_API_SECRET"); ok && v != "" {
		cfg.MediaAPISecret = v
	}
	if v, ok := os.LookupEnv("MEDIA_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MediaTimeout = d
		}
	}
	if v, ok := os.LookupEnv("MEDIA_MAX_RESULTS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MediaMaxResults = n
		}
	}

	if v, ok := os.LookupEnv("CACHE_TTL"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}

	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		cfg.JWTSecret = v
	}
	if v, ok := os.LookupEnv("JWT_ISSUER"); ok && v != "" {
		cfg.JWTIssuer = v
	}
	if v, ok := os.LookupEnv("JWT_TTL"); ok && v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			cfg.JWTTTL = t
		}
	}
	if v, ok := os.LookupEnv("ADMIN_USER"); ok && v != "" {
		cfg.AdminUser = v
	}
	if v, ok := os.LookupEnv("ADMIN_PASSWORD_HASH"); ok && v != "" {
		cfg.AdminPasswordHash = v
	}

	if v, ok := os.LookupEnv("TRACING_ENABLED"); ok && v != "" {
		cfg.TracingEnabled = strings.ToLower(v) == "true"
	}
	if v, ok := os.LookupEnv("OTLP_GRPC_ENDPOINT"); ok && v != "" {
		cfg.OtlpGrpcEndpoint = v
	}
	if v, ok := os.LookupEnv("OTLP_SERVICE_NAME"); ok && v != "" {
		cfg.OtlpServiceName = v
	}

	if v, ok := os.LookupEnv("REDIS_ENABLED"); ok && v != "" {
		cfg.RedisEnabled = strings.ToLower(v) == "true"
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok && v != "" {
		cfg.RedisAddr = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok && v != "" {
		cfg.RedisPassword = v
	}
	if v, ok := os.LookupEnv("REDIS_DB"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}

	if v, ok := os.LookupEnv("RATELIMIT_ENABLED"); ok && v != "" {
		cfg.RateLimitEnabled = strings.ToLower(v) == "true"
	}

	if v, ok := os.LookupEnv("KAFKA_ENABLED"); ok && v != "" {
		cfg.KafkaEnabled = strings.ToLower(v) == "true"
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("KAFKA_TOPIC"); ok && v != "" {
		cfg.KafkaTopic = v
	}

	return cfg
}
