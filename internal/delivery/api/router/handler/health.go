package handler

import (
	"net/http"
	"time"

	"cargomatch/config"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness checks.
type HealthHandler struct {
	service string
	started time.Time
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{service: cfg.Env.ServiceName, started: time.Now()}
}

// HealthCheck handles GET /health.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": h.service,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
