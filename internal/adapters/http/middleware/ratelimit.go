package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/dto"
)

const (
	// limiterIdleTTL is how long a client's limiter is kept after its last
	// request. It must exceed the time a limiter needs to refill completely.
	limiterIdleTTL = 3 * time.Minute

	rateLimitDetail = "too many requests, please try again later"
)

// RateLimiter enforces a token-bucket limit per client IP. Limiters for
// clients idle longer than limiterIdleTTL are dropped on the next sweep.
type RateLimiter struct {
	perMinute int
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter that allows requestsPerMinute per
// client with bursts of up to burst requests.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	return newRateLimiter(requestsPerMinute, burst, time.Now)
}

func newRateLimiter(requestsPerMinute, burst int, now func() time.Time) *RateLimiter {
	ttl := limiterIdleTTL
	if refill := time.Duration(burst) * time.Minute / time.Duration(max(requestsPerMinute, 1)); refill > ttl {
		ttl = refill
	}
	return &RateLimiter{
		perMinute: requestsPerMinute,
		limit:     rate.Limit(float64(requestsPerMinute) / 60),
		burst:     burst,
		ttl:       ttl,
		now:       now,
		clients:   make(map[string]*clientLimiter),
		lastSweep: now(),
	}
}

// Allow reports whether a request from key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *RateLimiter) sweep(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.ttl {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// Middleware returns middleware that rejects requests over the limit with a
// 429 problem response and a Retry-After hint.
func (l *RateLimiter) Middleware() func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(l.retryAfterSeconds())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", retryAfter)
				dto.WriteProblem(w, r, http.StatusTooManyRequests, rateLimitDetail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds is the time until one token is available again.
func (l *RateLimiter) retryAfterSeconds() int {
	const secondsPerMinute = 60
	if l.perMinute <= 0 {
		return secondsPerMinute
	}
	return (secondsPerMinute + l.perMinute - 1) / l.perMinute
}

// clientIP returns the host part of the connection's remote address.
// Forwarding headers are not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
