package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ridContextKey = "request_id"

// RequestIDFrom returns the id assigned by RequestID, or "" when the request
// never passed through it.
func RequestIDFrom(c echo.Context) string {
	rid, _ := c.Get(ridContextKey).(string)
	return rid
}

// RequestID assigns an id to every request, honoring an incoming
// X-Request-ID header so upstream proxies can correlate logs.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set(ridContextKey, rid)
			c.Response().Header().Set("X-Request-ID", rid)
			return next(c)
		}
	}
}
