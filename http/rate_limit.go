package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	staleClientAge  = 1 * time.Hour
	sweepInterval   = 30 * time.Minute
	rateLimitWindow = time.Minute
)

type tokenBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter allows a fixed number of requests per client IP per minute.
// Buckets for idle clients are swept periodically.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	clients map[string]*tokenBucket
	done    chan struct{}
}

func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		limit:   perMinute,
		clients: make(map[string]*tokenBucket),
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, bucket := range rl.clients {
		if now.Sub(bucket.lastRefill) > staleClientAge {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, ok := rl.clients[ip]
	if !ok {
		rl.clients[ip] = &tokenBucket{tokens: rl.limit - 1, lastRefill: now}
		return true
	}

	if now.Sub(bucket.lastRefill) >= rateLimitWindow {
		bucket.tokens = rl.limit
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
