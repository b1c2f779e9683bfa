package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// AddressRateLimiter throttles money-moving requests per user address.
type AddressRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

func NewAddressRateLimiter(r rate.Limit, burst int) *AddressRateLimiter {
	return &AddressRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		burst:    burst,
	}
}

func (l *AddressRateLimiter) limiter(address string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[address]
	if !ok {
		lim = rate.NewLimiter(l.r, l.burst)
		l.limiters[address] = lim
	}
	return lim
}

// Allow reports whether a request for address may proceed, returning an
// HTTPError when the limit is exceeded
func (l *AddressRateLimiter) Allow(address string) *HTTPError {
	if !l.limiter(address).Allow() {
		return &HTTPError{
			StatusCode: http.StatusTooManyRequests,
			Message:    "Too many requests, slow down",
		}
	}
	return nil
}
