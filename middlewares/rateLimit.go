package middlewares

import (
	"net/http"

	"github.com/RAMIR007/konfort-total2/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit rejects requests once the caller's window is exhausted.
// Clients are keyed by IP.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !limiter.Allow(ctx.ClientIP()) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		ctx.Next()
	}
}
