package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/api/shared"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client IP using a token bucket per
// address. Idle buckets are evicted so long-running processes do not
// accumulate one limiter per address ever seen.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing requests per window for each
// client IP. A zero requests value disables limiting.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		burst:    requests,
	}
	if requests > 0 && window > 0 {
		rl.limit = rate.Limit(float64(requests) / window.Seconds())
	}

	go rl.cleanupLoop(window)

	return rl
}

// Limit is the middleware entry point.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.allow(clientIP(r)) {
			shared.RespondWithError(w, r, http.StatusTooManyRequests,
				"Too many requests, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop(window time.Duration) {
	if window <= 0 {
		return
	}

	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-3 * window)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP strips the port from RemoteAddr. Behind chi's RealIP
// middleware RemoteAddr already carries the forwarded client address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
