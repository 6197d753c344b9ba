package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/api/metrics"
)

// Limiter is the rate-limit decision source (Redis in production).
type Limiter interface {
	Allow(ctx context.Context, scope, clientKey string) (bool, error)
}

// RateLimit caps calls per client IP for the given scope. Limiter errors fail
// open: an unreachable Redis must not take registration down with it.
func RateLimit(limiter Limiter, scope string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), scope, c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitTotal.WithLabelValues("limited").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			metrics.RateLimitTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}
