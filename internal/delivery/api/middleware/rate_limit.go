package middleware

import (
	"net/http"

	"cargomatch/config"
	domainerrors "cargomatch/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned once a client exceeds its request budget.
var ErrRateLimited = domainerrors.NewBaseError(
	http.StatusTooManyRequests,
	"RATE_LIMITED",
	"Too many requests, please slow down",
	"",
)

// NewRateLimiter limits credential and upload routes per client IP. It is a
// pass-through when rate limiting is disabled.
func NewRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	rl := cfg.RateLimit
	if rl == nil || !rl.Enabled || rl.Rate <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rl.Rate),
		Burst:     rl.Burst,
		ExpiresIn: rl.ExpiresIn,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return domainerrors.ErrForbidden.WithDetails("client identity unavailable")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return ErrRateLimited
		},
	})
}
