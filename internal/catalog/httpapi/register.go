package httpapi

import (
	"time"

	"babilonia.local/gee"
	"babilonia.local/internal/catalog"
	"babilonia.local/internal/platform/auth"
	"babilonia.local/internal/platform/httpmiddleware"
	"babilonia.local/internal/platform/ratelimit"
)

// GatewayInfo is what the health endpoint needs to know about the media
// directory client.
type GatewayInfo interface {
	Configured() bool
	AccountID() string
}

// RegisterRoutes mounts the storefront catalog API on the engine root.
// This package is transport only: handlers translate HTTP to and from
// the catalog service and map error kinds to status codes.
//
// Destructive routes (delete, upload) require an admin token; the
// storefront "admin mode" toggle in the client is cosmetic and cannot be
// the gate.
func RegisterRoutes(r *gee.Engine, svc *catalog.Service, info GatewayInfo, ts auth.TokenService, creds Credentials, limiter *ratelimit.Limiter) {
	r.GET("/health", NewHealthHandler(info))

	r.GET("/products", NewListHandler(svc))
	r.GET("/products/*id", NewGetHandler(svc))

	r.POST("/cache/invalidate", NewCacheInvalidateHandler(svc))

	r.POST("/api/login", httpmiddleware.RateLimit(limiter, "login", 5, time.Minute), NewLoginHandler(ts, creds))

	admin := []gee.HandlerFunc{
		httpmiddleware.AuthRequired(ts),
		httpmiddleware.RequireRole("admin"),
	}

	r.DELETE("/delete-product", append(admin,
		httpmiddleware.RateLimit(limiter, "delete", 30, time.Minute),
		NewDeleteByQueryHandler(svc))...)
	// legacy path form kept for old clients
	r.DELETE("/products/*id", append(admin,
		httpmiddleware.RateLimit(limiter, "delete", 30, time.Minute),
		NewDeleteByPathHandler(svc))...)
	r.POST("/products", append(admin,
		httpmiddleware.RateLimit(limiter, "upload", 30, time.Minute),
		NewUploadHandler(svc))...)
}
