package httpapi

import (
	"net/http"
	"time"

	"babilonia.local/gee"
)

func NewHealthHandler(info GatewayInfo) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		ctx.JSON(http.StatusOK, gee.H{
			"success":   true,
			"message":   "Babilonia Calzados API running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"mediaGateway": gee.H{
				"configured": info.Configured(),
				"accountId":  info.AccountID(),
			},
		})
	}
}
