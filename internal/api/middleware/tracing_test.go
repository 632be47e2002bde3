package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// Not parallel: swaps the global tracer provider.
func TestTracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(t.Context())
	})

	e := echo.New()
	e.Use(Tracing("rgm"))

	var sawSpan bool
	e.GET("/api/v1/logistics/fees", func(c echo.Context) error {
		sawSpan = trace.SpanContextFromContext(c.Request().Context()).IsValid()
		return c.NoContent(http.StatusOK)
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/api/v1/logistics/fees", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.True(t, sawSpan)

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "GET /api/v1/logistics/fees", ended[0].Name())
	assert.Equal(t, trace.SpanKindServer, ended[0].SpanKind())
}
