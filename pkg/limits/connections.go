package limits

import (
	"net"
	"net/http"
	"sync"
	"sync/atomic"
)

// ConnectionLimiter limits concurrent connections per client address.
type ConnectionLimiter struct {
	maxPerIP int

	mu    sync.Mutex
	count map[string]int

	totalBlocked atomic.Int64
}

// NewConnectionLimiter creates a limiter allowing maxPerIP concurrent
// connections per address. maxPerIP <= 0 disables the limit.
func NewConnectionLimiter(maxPerIP int) *ConnectionLimiter {
	return &ConnectionLimiter{
		maxPerIP: maxPerIP,
		count:    make(map[string]int),
	}
}

// Acquire takes a slot for ip. It reports false when ip is at the limit.
func (cl *ConnectionLimiter) Acquire(ip string) bool {
	if cl.maxPerIP <= 0 {
		return true
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.count[ip] >= cl.maxPerIP {
		cl.totalBlocked.Add(1)
		return false
	}
	cl.count[ip]++
	return true
}

// Release frees a slot taken by Acquire.
func (cl *ConnectionLimiter) Release(ip string) {
	if cl.maxPerIP <= 0 {
		return
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if n := cl.count[ip]; n <= 1 {
		delete(cl.count, ip)
	} else {
		cl.count[ip] = n - 1
	}
}

// Count returns the open connections for ip.
func (cl *ConnectionLimiter) Count(ip string) int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.count[ip]
}

// TotalBlocked returns how many connections were refused.
func (cl *ConnectionLimiter) TotalBlocked() int64 {
	return cl.totalBlocked.Load()
}

// Middleware holds a slot for the lifetime of each request. For a
// WebSocket that is the lifetime of the connection.
func (cl *ConnectionLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			if !cl.Acquire(ip) {
				http.Error(w, ErrTooManyConnections.Error(), http.StatusTooManyRequests)
				return
			}
			defer cl.Release(ip)

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of r.RemoteAddr. Proxy headers are
// expected to have been applied already by chi's RealIP middleware.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
