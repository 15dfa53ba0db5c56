/*
Package limiter provides per-IP request rate limiting.

Each client IP gets its own token bucket (rate.Limiter); a background
goroutine periodically drops buckets that have refilled completely, so the map
does not grow without bound.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"alegarazh/internal/pkg/errs"
	"alegarazh/internal/pkg/logx"
	"alegarazh/internal/pkg/resp"
)

// cleanupInterval is how often idle limiters are swept.
const cleanupInterval = 3 * time.Minute

// IPRateLimiter tracks one token bucket per client IP address.
type IPRateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter
	r      rate.Limit
	b      int
}

// NewIPRateLimiter creates a limiter allowing r events per second with burst b
// per IP, and starts the background cleanup goroutine.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go i.cleanup()

	return i
}

// limiterFor returns the bucket for ip, creating it on first sight.
func (i *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	i.mu.RLock()
	lim, exists := i.limits[ip]
	i.mu.RUnlock()

	if exists {
		return lim
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if lim, exists = i.limits[ip]; !exists {
		lim = rate.NewLimiter(i.r, i.b)
		i.limits[ip] = lim
	}
	return lim
}

// cleanup removes buckets whose tokens have fully refilled; those IPs have
// been idle for at least a full burst worth of time.
func (i *IPRateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		i.mu.Lock()
		removed := 0
		for ip, lim := range i.limits {
			if lim.TokensAt(time.Now()) >= float64(lim.Burst()) {
				delete(i.limits, ip)
				removed++
			}
		}
		remaining := len(i.limits)
		i.mu.Unlock()

		logx.Debug("rate limiter cleanup", "removed", removed, "remaining", remaining)
	}
}

// Middleware rejects requests over the per-IP limit with 429.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown_ip"
		}

		if !i.limiterFor(ip).Allow() {
			resp.Error(w, errs.New(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
