package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/rocketgrowth-margin/internal/api/handlers"
	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
)

// Not parallel: swaps the global tracer provider.
func TestHandlers_RecordSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(t.Context())
	})

	eng := engine.NewEngine(nil)
	_, api := humatest.New(t)
	handlers.RegisterCalculateRoutes(api, handlers.NewCalculateHandler(eng))
	handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(eng))

	resp := api.Post("/api/v1/calculate", map[string]any{
		"sale_price": 25800,
		"cost":       15000,
		"size":       "medium",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Post("/api/v1/analyze", map[string]any{
		"product": map[string]any{
			"title":         "여성 니트 가디건",
			"sale_price":    25800,
			"category_path": []string{"여성패션", "의류"},
		},
		"cost": 15000,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	attrs := map[string]map[string]string{}
	for _, s := range rec.Ended() {
		m := map[string]string{}
		for _, kv := range s.Attributes() {
			m[string(kv.Key)] = kv.Value.Emit()
		}
		attrs[s.Name()] = m
	}

	require.Contains(t, attrs, "calculate")
	assert.Equal(t, "medium", attrs["calculate"]["rgm.size"])

	require.Contains(t, attrs, "analyze")
	assert.Equal(t, "의류", attrs["analyze"]["rgm.category"])
	assert.Equal(t, "medium", attrs["analyze"]["rgm.size"])
	assert.Equal(t, "0", attrs["analyze"]["rgm.warnings"])
}
