package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/rocketgrowth-margin/internal/metrics"
)

const stackSize = 8 << 10

// Recovery returns Echo middleware that turns a handler panic into a 500
// response. The panic value, route, request ID and goroutine stack are
// logged. Nothing is written when the handler already committed a response.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				buf := make([]byte, stackSize)
				buf = buf[:runtime.Stack(buf, false)]

				reqID, _ := c.Get("request_id").(string)
				metrics.PanicsTotal.Inc()
				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"route", c.Path(),
					"request_id", reqID,
					"stack", string(buf),
				)

				if c.Response().Committed {
					return
				}
				err = c.JSON(http.StatusInternalServerError, map[string]string{
					"error":      "internal server error",
					"request_id": reqID,
				})
			}()
			return next(c)
		}
	}
}
