package middleware

import (
	"sync"
	"time"

	"minflow/internal/errors"
	"minflow/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// visitor tracks one client's limiter and when it last made a request
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 10

	// Idle visitors are evicted after this long so the map stays bounded
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex

	requestsPerSecond = defaultRequestsPerSecond
	burstSize         = defaultBurst
)

// RateLimiter throttles requests per client IP with the default budget
func RateLimiter() echo.MiddlewareFunc {
	go evictIdleVisitors()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !visitorLimiter(getIP(c)).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}

			return next(c)
		}
	}
}

// RateLimiterWithConfig overrides the per-IP budget
func RateLimiterWithConfig(rps, burst int) echo.MiddlewareFunc {
	requestsPerSecond = rps
	burstSize = burst

	return RateLimiter()
}

func visitorLimiter(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	if v, ok := visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	v := &visitor{
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
		lastSeen: time.Now(),
	}
	visitors[ip] = v
	return v.limiter
}

// getIP resolves the client address, trusting proxy headers when present
func getIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

func evictIdleVisitors() {
	for {
		time.Sleep(cleanupInterval)

		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}
