package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"movie-review/pkg/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

// IPRateLimiter keeps one token bucket per client IP. Idle buckets are
// dropped lazily on the next call after the cleanup interval.
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	clock     clockwork.Clock
	cleanupAt time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(rps float64, burst int, clock clockwork.Clock) *IPRateLimiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &IPRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(rps),
		burst:     burst,
		clock:     clock,
		cleanupAt: clock.Now().Add(limiterCleanupInterval),
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if now.After(l.cleanupAt) {
		l.cleanup(now)
		l.cleanupAt = now.Add(limiterCleanupInterval)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// must be called with mu held
func (l *IPRateLimiter) cleanup(now time.Time) {
	cutoff := now.Add(-limiterIdleTimeout)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// Len returns the number of tracked client IPs.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RateLimit answers 429 once a client IP exhausts its bucket.
func RateLimit(limiter *IPRateLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	retryAfter := "1"
	if limiter.rate > 0 {
		retryAfter = strconv.Itoa(int(1/float64(limiter.rate)) + 1)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", retryAfter)
				utils.ResponseTooManyRequests(w, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys on the connection address. Forwarded headers are only
// honoured when a trusted proxy rewrites RemoteAddr upstream of this.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
