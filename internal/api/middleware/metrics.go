// Package middleware provides Echo middleware for rocketgrowth-margin.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/rocketgrowth-margin/internal/metrics"
)

// metricsSkipPaths are probe and scrape endpoints. They update health gauges
// instead of request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// unmatchedRoute labels requests that matched no registered route, keeping
// arbitrary URLs out of label values.
const unmatchedRoute = "unmatched"

// Metrics returns Echo middleware that records request duration and count by
// method, route template and status. Errors returned by the handler are
// counted with the status Echo's error handler will write.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, skip := metricsSkipPaths[c.Request().URL.Path]; skip {
				err := next(c)
				updateHealthGauge(c.Request().URL.Path, statusOf(c, err))
				return err
			}

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			labels := prometheus.Labels{
				"method": c.Request().Method,
				"path":   route,
				"status": strconv.Itoa(statusOf(c, err)),
			}
			metrics.HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.With(labels).Inc()

			return err
		}
	}
}

// statusOf returns the response status, or the status an unhandled error
// will be rendered with.
func statusOf(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func updateHealthGauge(path string, status int) {
	gauge, ok := healthGauges[path]
	if !ok {
		return
	}
	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
