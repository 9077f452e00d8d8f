package middleware

import (
	"time"

	"stacknori/internal/handler"
	"stacknori/internal/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogger 記錄每個請求，依狀態碼分級：5xx error、4xx warn、其餘 info
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Set(handler.ContextErrorKey, err)
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			fields := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if u, ok := CurrentUser(c); ok {
				fields = append(fields, "user_id", u.ID)
			}
			if err, ok := c.Get(handler.ContextErrorKey).(error); ok {
				fields = append(fields, "error", err.Error())
			}

			switch {
			case status >= 500:
				log.Error("request failed", fields...)
			case status >= 400:
				log.Warn("request rejected", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		}
	}
}
