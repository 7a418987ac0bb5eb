package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter caps requests per client IP within a fixed window. The board
// frontend polls aggressively, so the limit is counted per IP rather than
// per route.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	type counter struct {
		hits    int
		resetAt time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*counter)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			ip := c.RealIP()

			mu.Lock()
			cnt, ok := clients[ip]
			if !ok || now.After(cnt.resetAt) {
				cnt = &counter{resetAt: now.Add(window)}
				clients[ip] = cnt
			}

			if cnt.hits >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Limite de requisições excedido. Tente novamente em instantes.")
			}

			cnt.hits++
			mu.Unlock()

			return next(c)
		}
	}
}
