package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"vision/pkg/response"
)

// RateLimit gives each client IP a token bucket. Buckets idle for a while are evicted.
func (mw Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.limit == 0 {
			c.Next()
			return
		}

		route := c.FullPath()
		rlRequests.WithLabelValues(route).Inc()

		if !mw.limiterFor(c.ClientIP()).Allow() {
			rlBlocked.WithLabelValues(route).Inc()
			mw.l.Warnf(c.Request.Context(), "middleware.RateLimit: %s blocked on %s", c.ClientIP(), route)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

func (mw Middleware) limiterFor(key string) *rate.Limiter {
	mw.limitersMu.Lock()
	defer mw.limitersMu.Unlock()

	if lim, ok := mw.limiters.Get(key); ok {
		return lim
	}
	lim := rate.NewLimiter(mw.limit, mw.burst)
	mw.limiters.Add(key, lim)
	return lim
}
