package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "comlab/internal/errors"
	"comlab/internal/logger"
	"comlab/internal/ratelimit"
)

// RateLimit throttles requests per client IP. A nil limiter disables it and
// limiter errors fail open.
func RateLimit(limiter ratelimit.Limiter, retryAfter time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.ClientIP()
		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Get().Warnw("rate limiter unavailable, allowing request",
				"error", err,
				"client_ip", key,
			)
			c.Next()
			return
		}
		if !ok {
			secs := int(retryAfter.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			logger.Get().Warnw("rate limit exceeded", "client_ip", key, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   apperrors.ErrRateLimited.Message,
				"code":    apperrors.ErrRateLimited.Code,
			})
			return
		}

		c.Next()
	}
}
