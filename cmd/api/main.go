package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"babilonia.local/gee"
	"babilonia.local/gee/middleware"
	"babilonia.local/internal/catalog"
	"babilonia.local/internal/catalog/audit"
	catalogcache "babilonia.local/internal/catalog/cache"
	"babilonia.local/internal/catalog/gateway"
	"babilonia.local/internal/catalog/httpapi"
	"babilonia.local/internal/platform/auth"
	platformcache "babilonia.local/internal/platform/cache"
	"babilonia.local/internal/platform/config"
	"babilonia.local/internal/platform/httpmiddleware"
	"babilonia.local/internal/platform/httpserver"
	"babilonia.local/internal/platform/metrics"
	"babilonia.local/internal/platform/ratelimit"
	"babilonia.local/internal/platform/trace"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cfg := config.Load()

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})
	slog.SetDefault(slog.New(h))

	if !cfg.TracingEnabled {
		slog.Warn("tracing disabled by config", "TRACING_ENABLED", false)
	}

	// media directory
	dir := gateway.NewCloudinary(cfg.MediaCloudName, cfg.MediaAPIKey, cfg.MediaAPISecret, cfg.MediaTimeout)
	if !dir.Configured() {
		slog.Warn("media directory credentials missing, upstream calls will fail",
			"cloud_name", cfg.MediaCloudName)
	}

	// Redis is optional; without it the listing cache is in-process and
	// rate limiting is off.
	var listingStore catalog.ListingStore
	var limiter *ratelimit.Limiter
	if cfg.RedisEnabled {
		redisClient, errRedis := platformcache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if errRedis != nil {
			log.Fatal(errRedis)
		}
		defer redisClient.Close()
		listingStore = catalogcache.NewRedisStore(redisClient, cfg.CacheTTL)
		if cfg.RateLimitEnabled {
			limiter = ratelimit.NewLimiter(redisClient)
		}
		slog.Info("listing cache on redis", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	} else {
		listingStore = catalogcache.NewMemoryStore(cfg.CacheTTL, nil)
		slog.Info("listing cache in memory", "ttl", cfg.CacheTTL)
	}

	productCache, errLocal := catalogcache.NewProductCache(10_000, 1<<22, cfg.CacheTTL) // 10k entries, 4MB
	if errLocal != nil {
		log.Fatal(errLocal)
	}
	defer productCache.Close()

	// audit trail for catalog mutations
	var collector audit.Collector
	var consumer *audit.Consumer
	if cfg.KafkaEnabled {
		slog.Info("audit events on kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
		collector = audit.NewKafkaCollector(cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		channelCollector := audit.NewChannelCollector(1024)
		collector = channelCollector
		consumer = audit.NewConsumer(channelCollector)
	}

	svc := catalog.NewService(dir, listingStore, productCache, collector, cfg.MediaMaxResults)

	ts, jwtErr := auth.NewHS256Service(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if jwtErr != nil {
		log.Fatal(jwtErr)
	}

	metrics.Init()

	if cfg.TracingEnabled {
		shutdown := trace.InitTrace(cfg.OtlpGrpcEndpoint, cfg.OtlpServiceName)
		if shutdown == nil {
			slog.Error("trace init failed")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					slog.Error(err.Error())
				}
			}()
		}
	}

	// public API
	r := gee.New()
	r.Use(gee.Recovery(), middleware.ReqID(), middleware.CORS(), middleware.AccessLog(), httpmiddleware.Metrics(), httpmiddleware.TraceName())

	httpapi.RegisterRoutes(r, svc, dir, ts, httpapi.Credentials{
		User:         cfg.AdminUser,
		PasswordHash: cfg.AdminPasswordHash,
	}, limiter)

	r.GET("/healthz", func(ctx *gee.Context) {
		ctx.String(http.StatusOK, "ok")
	})

	publicHandler := http.Handler(r)
	if cfg.TracingEnabled {
		publicHandler = otelhttp.NewHandler(r, "http")
	}
	publicSrv := httpserver.New(cfg, publicHandler)

	// loopback only
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !dir.Configured() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("media directory not configured"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	adminMux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"service_name": cfg.ServiceName,
			"version":      version,
			"commit":       commit,
			"build_time":   buildTime,
			"go_version":   runtime.Version(),
		})
	})

	if cfg.PprofEnabled {
		adminMux.HandleFunc("/debug/pprof/", pprof.Index)
		adminMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		adminMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		adminMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		adminMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	adminSrv := &http.Server{
		Addr:              cfg.AdminAddr,
		Handler:           adminMux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errch := make(chan error, 2)

	go func() {
		errch <- httpserver.RunWithGracefulShutdownContext(publicSrv, cfg.ShutdownTimeout, stopCtx)
	}()
	go func() {
		errch <- httpserver.RunWithGracefulShutdownContext(adminSrv, cfg.ShutdownTimeout, stopCtx)
	}()

	if consumer != nil {
		go consumer.Run(stopCtx)
	}
	defer collector.Close()

	err := <-errch
	if err != nil {
		stop()
		select {
		case <-errch:
		case <-time.After(cfg.ShutdownTimeout + time.Second):
		}
		log.Fatal(err)
	}

	stop()
	<-errch
}
