package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Start成功〜Stop開始の間だけリクエストを通す。それ以外は503
func ReadinessGuard(ready func() bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ready() {
				return c.JSON(http.StatusServiceUnavailable, errorJSON("service not ready"))
			}
			return next(c)
		}
	}
}
