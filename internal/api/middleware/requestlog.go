package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-ID"

// probeTracker suppresses repeat successes on /healthz and /readyz. A probe
// is logged on its first success after start-up or after a failure.
type probeTracker struct {
	mu      sync.Mutex
	healthy map[string]bool
}

func (p *probeTracker) quiet(path string, ok bool) bool {
	if _, probe := healthGauges[path]; !probe {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	was := p.healthy[path]
	p.healthy[path] = ok
	return ok && was
}

// RequestLog returns Echo middleware that logs one line per request. It
// assigns a request ID when the client sends none and echoes it in the
// X-Request-ID response header. Server errors log at ERROR, client errors
// and failing probes at WARN.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	probes := &probeTracker{healthy: make(map[string]bool)}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := req.URL.Path
			status := statusOf(c, err)
			if probes.quiet(path, status < http.StatusBadRequest) {
				return err
			}

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", reqID),
			}
			if route := c.Path(); route != "" && route != path {
				attrs = append(attrs, slog.String("route", route))
			}
			if sc := trace.SpanContextFromContext(req.Context()); sc.IsValid() {
				attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			level := levelFor(status)
			if _, probe := healthGauges[path]; probe && level > slog.LevelWarn {
				level = slog.LevelWarn
			}
			log.LogAttrs(req.Context(), level, "request", attrs...)
			return err
		}
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
