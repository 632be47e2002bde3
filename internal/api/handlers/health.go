package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Readiness reports whether the service can answer requests.
type Readiness interface {
	Ready() error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	ready Readiness
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(r Readiness) *HealthHandler {
	return &HealthHandler{ready: r}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the fee schedule is valid, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if err := h.ready.Ready(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable", Reason: err.Error()})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
