package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/shopcraft/ecommerce-api/app/api"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter table. When it fills up the table is
// reset, which briefly lets every client start from a full bucket.
const maxTrackedClients = 10000

// ClientLimiter hands out one token bucket per client address.
type ClientLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (c *ClientLimiter) Allow(client string) bool {
	c.mu.Lock()
	limiter, ok := c.limiters[client]
	if !ok {
		if len(c.limiters) >= maxTrackedClients {
			c.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.limiters[client] = limiter
	}
	c.mu.Unlock()
	return limiter.Allow()
}

// RateLimit rejects requests above the client's rate with 429. A nil limiter
// disables limiting.
func RateLimit(limiter *ClientLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientAddr(r)) {
				w.Header().Set("Retry-After", "1")
				api.ErrorResponse(w, api.TooManyRequests("Too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
