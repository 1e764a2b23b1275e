package middleware

import (
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/logging"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestLogger attaches a request-scoped slog logger to both the echo
// context and the request's context.Context, then logs one line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			log := logging.Base().With(
				"request_id", reqID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
			)
			logging.With(c, log)
			c.SetRequest(c.Request().WithContext(logging.WithCtx(c.Request().Context(), log)))

			start := time.Now()
			err := next(c)

			log.Info("request handled",
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
