package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter keeps one token bucket per client host. Chat requests each
// cost a model call, so the limiter sits in front of the /v1 API.
type RateLimiter struct {
	buckets  sync.Map // host -> *bucket
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	perSec   float64
	last     time.Time
}

// NewRateLimiter starts a janitor that forgets buckets idle for longer than
// cleanupInterval (and at least ten minutes). Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{now: time.Now, stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval, max(cleanupInterval, 10*time.Minute))
	return rl
}

// Stop terminates the janitor. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit allows a burst of limit requests per client host, refilled evenly
// over window. Rejected requests get 429 with Retry-After set to the number
// of seconds until the next token.
func (rl *RateLimiter) Limit(limit int, window time.Duration) Middleware {
	capacity := float64(limit)
	perSec := capacity / window.Seconds()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			val, _ := rl.buckets.LoadOrStore(clientHost(r), &bucket{
				tokens:   capacity,
				capacity: capacity,
				perSec:   perSec,
				last:     rl.now(),
			})

			if wait, ok := val.(*bucket).take(rl.now()); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "rate_limited",
					"message": "too many requests, retry later",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientHost drops the port so every connection from one host shares a
// bucket.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// take spends one token. When none is left it returns how long until one is.
func (b *bucket) take(now time.Time) (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.last).Seconds()*b.perSec)
	b.last = now

	if b.tokens < 1 {
		missing := 1 - b.tokens
		return time.Duration(missing / b.perSec * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func (b *bucket) idleSince() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (rl *RateLimiter) cleanup(interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-idle)
			rl.buckets.Range(func(key, value any) bool {
				if value.(*bucket).idleSince().Before(cutoff) {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
