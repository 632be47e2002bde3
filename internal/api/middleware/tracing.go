package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Tracing returns Echo middleware that starts a server span per request
// using the global tracer provider. Probe and scrape paths are not traced.
func Tracing(service string) echo.MiddlewareFunc {
	return echo.WrapMiddleware(otelhttp.NewMiddleware(service,
		otelhttp.WithFilter(func(r *http.Request) bool {
			_, skip := metricsSkipPaths[r.URL.Path]
			return !skip
		}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	))
}
