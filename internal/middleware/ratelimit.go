package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/classboard/classboard/internal/pkg/response"
)

const rateLimitCacheSize = 4096

type rateWindow struct {
	start time.Time
	count int
}

// rateLimiter counts requests per client IP in fixed windows: the counter
// resets as a whole once the window elapses. The LRU bounds memory without a
// sweeper; evicting a key merely forgets its partial window.
type rateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	seen   *lru.Cache[string, *rateWindow]
	now    func() time.Time
}

// ResetRateLimit caps how often a single origin may request password-reset
// codes.
func ResetRateLimit(window time.Duration, max int) gin.HandlerFunc {
	return newRateLimiter(window, max).handle
}

func newRateLimiter(window time.Duration, max int) *rateLimiter {
	cache, _ := lru.New[string, *rateWindow](rateLimitCacheSize)
	return &rateLimiter{
		window: window,
		max:    max,
		seen:   cache,
		now:    time.Now,
	}
}

func (l *rateLimiter) allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.seen.Get(key)
	if !ok || now.Sub(w.start) >= l.window {
		l.seen.Add(key, &rateWindow{start: now, count: 1})
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

func (l *rateLimiter) handle(c *gin.Context) {
	if l.window <= 0 || l.max <= 0 {
		c.Next()
		return
	}
	ip := c.ClientIP()
	if !l.allow(ip) {
		logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
			zap.String("ip", ip),
			zap.String("path", c.Request.URL.Path),
		)
		response.Error(c, http.StatusTooManyRequests, "RateLimited", http.StatusText(http.StatusTooManyRequests))
		c.Abort()
		return
	}
	c.Next()
}
