package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"chatspace/backend/common"

	"github.com/gin-gonic/gin"
)

var inMemoryRateLimiter = struct {
	sync.Mutex
	buckets map[string][]time.Time
}{buckets: make(map[string][]time.Time)}

func redisRateLimit(c *gin.Context, key string, maxRequests int, duration time.Duration) bool {
	ctx := c.Request.Context()
	count, err := common.RDB.Incr(ctx, key).Result()
	if err != nil {
		// Redis trouble must not lock everyone out.
		return true
	}
	if count == 1 {
		common.RDB.Expire(ctx, key, duration)
	}
	return count <= int64(maxRequests)
}

func memoryRateLimit(key string, maxRequests int, duration time.Duration) bool {
	now := time.Now()
	cutoff := now.Add(-duration)

	inMemoryRateLimiter.Lock()
	defer inMemoryRateLimiter.Unlock()

	stamps := inMemoryRateLimiter.buckets[key]
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= maxRequests {
		inMemoryRateLimiter.buckets[key] = kept
		return false
	}
	inMemoryRateLimiter.buckets[key] = append(kept, now)
	return true
}

func rateLimit(prefix string, maxRequests int, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate:%s:%s", prefix, c.ClientIP())

		allowed := false
		if common.RedisEnabled && common.RDB != nil {
			allowed = redisRateLimit(c, key, maxRequests, duration)
		} else {
			allowed = memoryRateLimit(key, maxRequests, duration)
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GlobalAPIRateLimit is the per-IP ceiling applied to the whole API surface.
func GlobalAPIRateLimit() gin.HandlerFunc {
	return rateLimit("api", common.GlobalApiRateLimitNum, common.GlobalApiRateLimitDuration)
}

// CriticalRateLimit guards expensive or abusable endpoints such as login,
// register and setup.
func CriticalRateLimit() gin.HandlerFunc {
	return rateLimit("critical", common.CriticalRateLimitNum, common.CriticalRateLimitDuration)
}
