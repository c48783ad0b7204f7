package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/interfaces/http/response"
	"ico-admin.backend/pkg/logger"
	"ico-admin.backend/pkg/metrics"
	"ico-admin.backend/pkg/ratelimit"
)

const msgTooManyRequests = "Too many requests"

// RateLimitMiddleware applies limiter per client IP and route.
// Limiter failures are logged and the request is let through.
func RateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return rateLimit(limiter, time.Now)
}

func rateLimit(limiter ratelimit.Limiter, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := routeOf(c)
		key := c.ClientIP() + "|" + route

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key, now())
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable", zap.String("route", route), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimited.WithLabelValues(route).Inc()
			if retryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			}
			response.Abort(c, domainerrors.TooManyRequests(msgTooManyRequests))
			return
		}

		c.Next()
	}
}
