package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler provides health check HTTP handlers.
type Handler struct {
	checker *Checker
}

// NewHandler creates a new health handler.
func NewHandler(checker *Checker) *Handler {
	return &Handler{checker: checker}
}

// RegisterRoutes attaches the handler's routes to e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/livez", h.Liveness)
	e.GET("/readyz", h.Readiness)
}

// Health handles GET /health, the wire contract's minimal health check.
func (h *Handler) Health(c echo.Context) error {
	resp := h.checker.HealthCheck()
	status := http.StatusOK
	if resp.Status != StatusOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]Status{"status": resp.Status})
}

// Liveness handles GET /livez.
func (h *Handler) Liveness(c echo.Context) error {
	resp := h.checker.LivenessCheck()
	return c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /readyz.
func (h *Handler) Readiness(c echo.Context) error {
	resp := h.checker.ReadinessCheck()
	status := http.StatusOK
	if resp.Status != StatusOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}
