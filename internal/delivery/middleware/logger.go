package middleware

import (
	"context"
	"log/slog"
	"time"

	"cargomatch/config"
	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware logs requests when debug is on and always feeds the
// request duration histogram when a recorder is present.
type LoggerMiddleware struct {
	logger  *slog.Logger
	metrics service.MetricsRecorder
	debug   bool
}

// NewLoggerMiddleware creates a new logger middleware. metrics may be nil.
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config, metrics service.MetricsRecorder) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger:  logger,
		metrics: metrics,
		debug:   config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Render now so the logged status is the one the client sees.
			c.Error(err)
		}

		latency := time.Since(start)
		if m.metrics != nil {
			m.metrics.ObserveHTTPRequest(c.Request().Method, routeOf(c), c.Response().Status, latency)
		}
		if m.debug {
			m.logRequest(c, start, latency, err)
		}

		return nil
	}
}

// routeOf returns the registered route template so metrics stay low-cardinality.
func routeOf(c echo.Context) string {
	if path := c.Path(); path != "" {
		return path
	}

	return "unmatched"
}

// logRequest logs request details
func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, latency time.Duration, err error) {
	req := c.Request()
	res := c.Response()

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.String("route", routeOf(c)),
		slog.Int("status", res.Status),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
		slog.String("time", start.Format(time.RFC3339)),
	}

	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}

	if identity, ok := deliverycontext.GetIdentity(c); ok {
		fields = append(fields,
			slog.String("user_id", identity.UserID.String()),
			slog.String("role", identity.Role.String()),
		)
	}

	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	logLevel := slog.LevelInfo
	if res.Status >= 400 {
		logLevel = slog.LevelWarn
	}
	if res.Status >= 500 {
		logLevel = slog.LevelError
	}

	m.logger.LogAttrs(context.Background(), logLevel, "HTTP Request", fields...)
}
