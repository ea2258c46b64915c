package api

import (
	"StockSense/internal/service/ratelimit"
	xhttp "StockSense/pkg/http"
	xlogger "StockSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig sizes the per-client token bucket.
type RateLimitConfig struct {
	Capacity     float64
	RefillPerSec float64
}

// RateLimit throttles each client IP per scope.
func RateLimit(l *ratelimit.Limiter, cfg RateLimitConfig, scope string, logger *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()+":"+scope, cfg.Capacity, cfg.RefillPerSec) {
				if logger != nil {
					logger.Warn("rate limited",
						xlogger.String("scope", scope),
						xlogger.String("remote", c.RealIP()),
					)
				}
				return xhttp.TooManyRequestsResponse(c, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
