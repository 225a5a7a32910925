package middleware

import (
	"net/http"

	"babilonia.local/gee"
)

// CORS answers preflight requests and marks every response as callable
// from any origin. The storefront front-end is served from a different
// origin (Vite dev server or the static host), so the API stays wide open.
func CORS() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		ctx.SetHeader("Access-Control-Allow-Origin", "*")
		ctx.SetHeader("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		ctx.SetHeader("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if ctx.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}

		ctx.Next()
	}
}
