package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// maxLimiterKeys bounds the number of clients tracked at once
const maxLimiterKeys = 10000

// RateLimiter keeps one token bucket per key. A bucket holds limit tokens
// and refills the whole limit over window. Idle buckets are evicted.
type RateLimiter struct {
	limit    int
	every    rate.Limit
	limiters *expirable.LRU[string, *rate.Limiter]
}

// NewRateLimiter creates a limiter allowing limit requests per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	limit = max(limit, 1)
	return &RateLimiter{
		limit:    limit,
		every:    rate.Every(window / time.Duration(limit)),
		limiters: expirable.NewLRU[string, *rate.Limiter](maxLimiterKeys, nil, 2*window),
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if l, ok := rl.limiters.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(rl.every, rl.limit)
	rl.limiters.Add(key, l)
	return l
}

// Allow reports whether a request for key may proceed, consuming a token
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

// Remaining returns the whole tokens left for key
func (rl *RateLimiter) Remaining(key string) int {
	return max(int(rl.limiter(key).Tokens()), 0)
}

// KeyFunc derives the bucket key of a request
type KeyFunc func(*gin.Context) string

// KeyByClientIP keys buckets by client address
func KeyByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyBySession keys buckets by user once authenticated, by address before
func KeyBySession(c *gin.Context) string {
	if sess, ok := GetSession(c); ok {
		return "user:" + sess.UserID.String()
	}
	return "ip:" + c.ClientIP()
}

// RateLimit answers 429 once the request's bucket is empty
func RateLimit(rl *RateLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)
		if !rl.Allow(key) {
			c.Header("Retry-After", "1")
			abortWithError(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.")
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining(key)))
		c.Next()
	}
}
