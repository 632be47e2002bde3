package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		path      string
		route     string
		reqID     string
		handler   echo.HandlerFunc
		wantErr   bool
		wantLog   []string
		wantNoLog []string
	}{
		{
			name:   "success with generated id",
			method: http.MethodGet,
			path:   "/api/v1/logistics/fees",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantLog:   []string{"level=INFO", "method=GET", "path=/api/v1/logistics/fees", "status=200", "duration_ms=", "request_id="},
			wantNoLog: []string{"route=", "error=", "trace_id="},
		},
		{
			name:   "parameterised route",
			method: http.MethodGet,
			path:   "/api/v1/logistics/fees/large-1",
			route:  "/api/v1/logistics/fees/:size",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantLog: []string{"route=/api/v1/logistics/fees/:size"},
		},
		{
			name:   "client supplied request id",
			method: http.MethodPost,
			path:   "/api/v1/calculate",
			reqID:  "calc-42",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantLog: []string{"method=POST", "request_id=calc-42"},
		},
		{
			name:   "http error logs at warn",
			method: http.MethodPost,
			path:   "/api/v1/calculate",
			handler: func(_ echo.Context) error {
				return echo.NewHTTPError(http.StatusBadRequest, "unknown size tier")
			},
			wantErr: true,
			wantLog: []string{"level=WARN", "status=400", "unknown size tier"},
		},
		{
			name:   "plain error logs at error",
			method: http.MethodPost,
			path:   "/api/v1/analyze",
			handler: func(_ echo.Context) error {
				return errors.New("schedule missing")
			},
			wantErr: true,
			wantLog: []string{"level=ERROR", "status=500", "error=\"schedule missing\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.reqID != "" {
				req.Header.Set(requestIDHeader, tt.reqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.route != "" {
				c.SetPath(tt.route)
			}

			err := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(tt.handler)(c)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			out := buf.String()
			for _, want := range tt.wantLog {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.wantNoLog {
				assert.NotContains(t, out, unwanted)
			}

			id := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, id)
			assert.Equal(t, id, c.Get("request_id"))
			if tt.reqID != "" {
				assert.Equal(t, tt.reqID, id)
			}
		})
	}
}

func TestRequestLog_ProbeFailureIsWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := echo.New()
	handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
		return c.NoContent(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=503")
}

func TestRequestLog_Probes(t *testing.T) {
	t.Parallel()

	type step struct {
		status int
		logged bool
	}

	tests := []struct {
		name  string
		path  string
		steps []step
	}{
		{
			name:  "healthz logs first success only",
			path:  "/healthz",
			steps: []step{{200, true}, {200, false}, {200, false}},
		},
		{
			name:  "readyz failures always logged",
			path:  "/readyz",
			steps: []step{{503, true}, {503, true}},
		},
		{
			name:  "healthz failure after success is logged",
			path:  "/healthz",
			steps: []step{{200, true}, {500, true}},
		},
		{
			name:  "recovery after failure is logged again",
			path:  "/readyz",
			steps: []step{{200, true}, {200, false}, {503, true}, {200, true}, {200, false}},
		},
		{
			name:  "api paths are never suppressed",
			path:  "/api/v1/logistics/fees",
			steps: []step{{200, true}, {200, true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()
			mw := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))

			for i, s := range tt.steps {
				status := s.status
				handler := mw(func(c echo.Context) error {
					return c.NoContent(status)
				})

				before := buf.Len()
				req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
				require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

				assert.Equal(t, s.logged, buf.Len() > before, "step %d (status %d)", i, status)
			}
		})
	}
}
