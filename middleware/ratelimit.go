package middleware

import (
	"net/http"
	"sync"

	"github.com/CareLoop-AI/CareLoopAI/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// BurstGuard is a cheap per-IP token bucket sitting in front of the
// persisted rate limiter. It only smooths out request floods (retry storms,
// naive scripts) so they never reach the database; the real submission
// limits live in services.RateLimiter.
func BurstGuard(perSecond int) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(perSecond), perSecond)
			limiters[ip] = l
		}
		return l
	}

	return func(c *gin.Context) {
		ip := services.ExtractClientIP(c.Request)
		if ip == "" {
			ip = "unknown"
		}

		if !limiterFor(ip).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}
