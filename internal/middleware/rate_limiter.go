package middleware

import (
	"net/http"
	"sync"
	"time"

	"tillpos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// slidingWindow tracks request counts per IP within a fixed window.
type slidingWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

func newSlidingWindow() *slidingWindow {
	return &slidingWindow{entries: make(map[string]*windowEntry)}
}

// hit registers one request and reports whether the limit is exceeded.
func (w *slidingWindow) hit(ip string, limit int, window time.Duration) (exceeded bool, retryAt time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	e, ok := w.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(window)}
		w.entries[ip] = e
	}
	e.count++
	return e.count > limit, e.windowEnd
}

func (w *slidingWindow) purge() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	purged := 0
	for ip, e := range w.entries {
		if now.After(e.windowEnd) {
			delete(w.entries, ip)
			purged++
		}
	}
	return purged
}

var (
	loginWindow = newSlidingWindow()
	apiWindow   = newSlidingWindow()
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if exceeded, _ := loginWindow.hit(c.ClientIP(), 20, time.Minute); exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many login attempts, retry in a minute"))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose per-IP limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if exceeded, retryAt := apiWindow.hit(c.ClientIP(), limit, window); exceeded {
			c.Header("Retry-After", retryAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests"))
			return
		}
		c.Next()
	}
}

// Expired entries are purged periodically so IPs that never return do not
// accumulate forever.
const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			purged := loginWindow.purge() + apiWindow.purge()
			if purged > 0 {
				log.Debug().Int("purged", purged).Msg("rate limiter maps purged")
			}
		}
	}()
}
