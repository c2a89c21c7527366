package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptopulse/internal/ratelimit"
)

// rateLimitBody is the fixed plain-text body of a 429 response.
const rateLimitBody = "Too many requests - rate limit exceeded"

// RateLimit gates every request through the given per-client limiter
// before it reaches any route.
//
// Behavior:
//   - Identifies clients by their IP address.
//   - Rejected requests are aborted with HTTP 429 and a plain-text body;
//     they never reach the handlers.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimit(ratelimit.New(100, time.Minute)))
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.String(http.StatusTooManyRequests, rateLimitBody)
			c.Abort()
			return
		}
		c.Next()
	}
}
