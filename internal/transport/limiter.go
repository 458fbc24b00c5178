package transport

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedIPs bounds the limiter map; it is reset when exceeded.
const maxTrackedIPs = 4096

// ipLimiter rate-limits inbound connections per remote IP.
type ipLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	perSec   int
}

// newIPLimiter returns nil when perSec is not positive, which disables limiting.
func newIPLimiter(perSec int) *ipLimiter {
	if perSec <= 0 {
		return nil
	}
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		perSec:   perSec,
	}
}

// Allow reports whether a new connection from ip may proceed.
func (l *ipLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	return l.get(ip).Allow()
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[ip]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[ip]; exists {
		return limiter
	}
	if len(l.limiters) >= maxTrackedIPs {
		l.limiters = make(map[string]*rate.Limiter)
	}

	limiter = rate.NewLimiter(rate.Limit(l.perSec), l.perSec)
	l.limiters[ip] = limiter
	return limiter
}
