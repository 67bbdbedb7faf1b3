package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptgen-backend/ratelimit"
)

// RateLimit rejects a request the moment any one limiter scope is exhausted,
// before quota evaluation or any business logic runs. Identity is the
// authenticated user when we have one, otherwise the client IP (auth routes
// run before login, so they always key by IP).
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			identity = fmt.Sprintf("user:%d", userID)
		}

		if !limiter.Allow(c.Request.Context(), identity) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many requests. Limit is %d per %s.", limiter.Max, limiter.Window),
			})
			return
		}
		c.Next()
	}
}
